package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"Trestle/internal/bridge"
	"Trestle/internal/params"
)

// sciagen generates the engine exchange artifacts offline: it reads a
// parameter set from a JSON file (or uses the defaults) and writes
// viktor.xml and viktor.xml.def to the output directory.
func main() {
	paramsPath := flag.String("params", "", "path to a parameter JSON file (defaults used when empty)")
	outDir := flag.String("out", ".", "output directory")
	flag.Parse()

	p := params.Defaults()
	if *paramsPath != "" {
		b, err := os.ReadFile(*paramsPath)
		if err != nil {
			log.Fatalf("read params: %v", err)
		}
		if err := json.Unmarshal(b, &p); err != nil {
			log.Fatalf("parse params: %v", err)
		}
	}

	model, err := bridge.GenerateModel(p, params.DefaultDesign())
	if err != nil {
		log.Fatalf("generate model: %v", err)
	}
	data, def, err := model.GenerateXML()
	if err != nil {
		log.Fatalf("generate xml: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	xmlPath := filepath.Join(*outDir, "viktor.xml")
	defPath := filepath.Join(*outDir, "viktor.xml.def")
	if err := os.WriteFile(xmlPath, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", xmlPath, err)
	}
	if err := os.WriteFile(defPath, def, 0o644); err != nil {
		log.Fatalf("write %s: %v", defPath, err)
	}

	fmt.Printf("wrote %s (%d nodes, %d beams)\n", xmlPath, len(model.Nodes), len(model.Beams))
	fmt.Printf("wrote %s\n", defPath)
}
