package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"Trestle/internal/bridge"
	"Trestle/internal/params"
	"Trestle/internal/ratelimit"
	"Trestle/internal/scia"
)

var wg sync.WaitGroup

// Config carries the resolved environment settings.
type Config struct {
	Addr      string
	WorkerURL string
	AssetsDir string
}

func loadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment")
	}
	cfg := Config{
		Addr:      os.Getenv("ADDR"),
		WorkerURL: os.Getenv("SCIA_WORKER_URL"),
		AssetsDir: os.Getenv("ASSETS_DIR"),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = "./assets"
	}
	if cfg.WorkerURL == "" {
		log.Println("SCIA_WORKER_URL is not set; analysis requests will fail")
	}
	return cfg
}

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(router *mux.Router, cfg Config) {
	bridgeH := &bridge.Handler{
		Design:    params.DefaultDesign(),
		AssetsDir: cfg.AssetsDir,
		Analysis:  scia.NewAnalysis(cfg.WorkerURL),
	}

	limiter := ratelimit.NewIPRateLimiter(1, 3)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/bridge/defaults", bridgeH.Defaults).Methods("GET")
	api.HandleFunc("/bridge/layout", bridgeH.Layout).Methods("POST")
	api.HandleFunc("/bridge/foundations", bridgeH.Foundations).Methods("POST")
	api.HandleFunc("/bridge/analysis", bridgeH.Analyze).Methods("POST")
	api.HandleFunc("/bridge/report", bridgeH.Report).Methods("POST")
	api.HandleFunc("/bridge/export/xlsx", bridgeH.ExportXLSX).Methods("POST")
	api.HandleFunc("/bridge/download/xml", bridgeH.DownloadXML).Methods("POST")
	api.HandleFunc("/bridge/download/def", bridgeH.DownloadDef).Methods("POST")
	api.HandleFunc("/bridge/download/esa", bridgeH.DownloadESA).Methods("GET")

	staticFileServer := http.FileServer(http.Dir("./static"))
	router.PathPrefix("/").Handler(staticFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := loadConfig()
	router := mux.NewRouter()
	HandleList(router, cfg)
	handler := CORS(router)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
