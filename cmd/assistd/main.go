// File path: cmd/assistd/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nimbuserp/nimbus-assist/internal/api"
	"github.com/nimbuserp/nimbus-assist/internal/common"
	"github.com/nimbuserp/nimbus-assist/internal/kb"
	"github.com/nimbuserp/nimbus-assist/internal/llm"
	"github.com/nimbuserp/nimbus-assist/internal/session"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("assist: .env file not loaded", "error", err)
	} else {
		logger.Info("assist: environment loaded from .env")
	}

	addr := flag.String("addr", ":8084", "listen address")
	datasetPath := flag.String("dataset", defaultDatasetPath(), "path to the bundled knowledge dataset")
	dbPath := flag.String("db", defaultDBPath(), "path to the SQLite session database (empty disables persistence)")
	genTimeoutDefault := strings.TrimSpace(os.Getenv("ASSIST_GEN_TIMEOUT"))
	genTimeout := flag.String("gen-timeout", genTimeoutDefault, "generation call timeout (e.g. 8s)")
	flag.Parse()

	logger.Info("assist: startup initiated", "addr", *addr, "dataset", *datasetPath)

	dataset, err := kb.LoadDataset(*datasetPath)
	if err != nil {
		logger.Error("assist: dataset load failed", "error", err)
		fmt.Println("dataset error:", err)
		os.Exit(1)
	}
	searcher := kb.NewSearcher(dataset, thresholdsFromEnv())

	var store *session.Store
	if trimmed := strings.TrimSpace(*dbPath); trimmed != "" {
		store, err = session.Open(trimmed)
		if err != nil {
			logger.Error("assist: session store open failed", "path", trimmed, "error", err)
			fmt.Println("session store error:", err)
			os.Exit(1)
		}
		defer store.Close()
	} else {
		logger.Warn("assist: session persistence disabled")
	}

	provider := llm.NewProvider()
	logger.Info("assist: llm provider ready", "provider", provider.Name())

	cfg := api.DefaultConfig()
	if trimmed := strings.TrimSpace(*genTimeout); trimmed != "" {
		dur, err := time.ParseDuration(trimmed)
		if err != nil {
			logger.Error("assist: invalid generation timeout", "value", trimmed, "error", err)
			fmt.Println("generation timeout error:", err)
			os.Exit(1)
		}
		cfg.GenTimeout = dur
	}

	server, err := api.NewServer(searcher, provider, store, &cfg)
	if err != nil {
		logger.Error("assist: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("assist: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("assist: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultDatasetPath() string {
	return filepath.Join("data", "dataset.json")
}

func defaultDBPath() string {
	return filepath.Join("data", "assist.db")
}

// thresholdsFromEnv collects optional per-source threshold overrides.
func thresholdsFromEnv() *kb.Thresholds {
	override := kb.Thresholds{
		Products: envFloat("ASSIST_THRESHOLD_PRODUCTS"),
		FAQs:     envFloat("ASSIST_THRESHOLD_FAQS"),
		Tickets:  envFloat("ASSIST_THRESHOLD_TICKETS"),
		Articles: envFloat("ASSIST_THRESHOLD_ARTICLES"),
		Company:  envFloat("ASSIST_THRESHOLD_COMPANY"),
	}
	return &override
}

func envFloat(key string) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		common.Logger().Warn("assist: invalid threshold override", "key", key, "value", raw, "error", err)
		return 0
	}
	return value
}
