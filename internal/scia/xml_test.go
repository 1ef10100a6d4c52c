package scia

import (
	"bytes"
	"strings"
	"testing"
)

func buildModel() *Model {
	m := NewModel()
	mat := Material{Name: "concrete_slab"}
	csMat := Material{Name: "C30/37"}

	corners := []*Node{
		m.Node("node_deck_0", 0, 0, 10),
		m.Node("node_deck_1", 0, 20, 10),
		m.Node("node_deck_2", 100, 20, 10),
		m.Node("node_deck_3", 100, 0, 10),
	}
	plane := m.NewPlane("deck_plane", corners, 2, mat)

	cs := m.NewRectangularSection("rect", csMat, 0.5, 0.5)
	beam := m.NewBeam("pile", m.Node("bot", 0, 0, -20), m.Node("top", 0, 0, 0), cs, RoleFoundationPile)

	subsoil := m.NewSubsoil("subsoil", 4e8)
	m.NewSurfaceSupport(plane, subsoil)
	m.NewLineSupport(LineSupport{
		Name: "ls0", Beam: beam,
		X: Flexible, StiffnessX: 4e8,
		Y: Flexible, StiffnessY: 4e8,
		Z: Free, RX: Free, RY: Free, RZ: Free,
	})
	m.NewPointSupport("ps0", beam.BeginNode,
		[6]Freedom{Free, Free, Flexible, Free, Free, Free},
		[6]float64{0, 0, 4e8, 0, 0, 0})

	lg := m.NewLoadGroup("LG1", "variable", "standard", "cat_g")
	lc := m.NewVariableLoadCase("LC1", "first load case", lg, "static", "standard", "short")
	m.NewLoadCombination("C1", "envelope_serviceability", []CaseFactor{{Case: lc, Factor: 1}})
	m.NewSurfaceLoad("SF:1", lc, plane, "Z", "force", -1e5, "length")
	return m
}

func TestGenerateXMLDeterministic(t *testing.T) {
	data1, def1, err := buildModel().GenerateXML()
	if err != nil {
		t.Fatalf("GenerateXML: %v", err)
	}
	data2, def2, err := buildModel().GenerateXML()
	if err != nil {
		t.Fatalf("GenerateXML: %v", err)
	}
	if !bytes.Equal(data1, data2) {
		t.Error("identical models must serialize to identical data documents")
	}
	if !bytes.Equal(def1, def2) {
		t.Error("identical models must serialize to identical definition documents")
	}
}

func TestGenerateXMLContent(t *testing.T) {
	data, def, err := buildModel().GenerateXML()
	if err != nil {
		t.Fatalf("GenerateXML: %v", err)
	}

	s := string(data)
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`xmlns="http://www.scia.cz"`,
		`<def uri="viktor.xml.def">`,
		`EP_DSG_Elements.EP_StructNode.1`,
		`name="node_deck_0"`,
		`name="deck_plane"`,
		`name="LC1"`,
		`v="-100000"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("data document missing %q", want)
		}
	}

	d := string(def)
	if !strings.Contains(d, "def_project") {
		t.Error("definition document must contain def_project")
	}
	if strings.Contains(d, "node_deck_0") {
		t.Error("definition document must not contain data rows")
	}
}

func TestDefIndependentOfModel(t *testing.T) {
	_, populated, err := buildModel().GenerateXML()
	if err != nil {
		t.Fatalf("GenerateXML: %v", err)
	}
	_, empty, err := NewModel().GenerateXML()
	if err != nil {
		t.Fatalf("GenerateXML: %v", err)
	}
	if !bytes.Equal(populated, empty) {
		t.Error("the definition document must not depend on model contents")
	}
}
