package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	spotshell "github.com/spotshell/spotshell"
	"github.com/spotshell/spotshell/internal/llm"
	"gopkg.in/yaml.v3"
)

type serviceConfig struct {
	DBPath     string      `yaml:"db_path"`
	PresetsURL string      `yaml:"presets_url"`
	LLM        *llm.Config `yaml:"llm"`
}

func loadServiceConfig(path string) (*serviceConfig, error) {
	cfg := &serviceConfig{
		DBPath:     "./spotshell.db",
		PresetsURL: "https://raw.githubusercontent.com/spotshell/presets/main",
		LLM:        llm.DefaultConfig(),
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "./config/config.yaml", "path to YAML service config")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg, err := loadServiceConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spotshell-web: %v\n", err)
		os.Exit(1)
	}

	engine, err := spotshell.NewEngine(spotshell.EngineConfig{
		DBPath:     cfg.DBPath,
		PresetsURL: cfg.PresetsURL,
		LLM:        cfg.LLM,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "spotshell-web: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	mux := newRouter(engine)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      logging(recovery(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("spotshell-web: listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("spotshell-web: %v", err)
		}
	}()

	<-done
	log.Println("spotshell-web: shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("spotshell-web: shutdown error: %v", err)
	}
	log.Println("spotshell-web: stopped")
}
