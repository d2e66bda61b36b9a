// Command server runs the crop disease detection HTTP API.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/agrovision-ai/go-crops/auth"
	"github.com/agrovision-ai/go-crops/classes"
	"github.com/agrovision-ai/go-crops/config"
	"github.com/agrovision-ai/go-crops/images"
	"github.com/agrovision-ai/go-crops/inference"
	"github.com/agrovision-ai/go-crops/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set, using an insecure development secret")
		cfg.JWTSecret = "dev-secret-change-me"
	}

	store, err := auth.OpenStore(cfg.SQLitePath)
	if err != nil {
		slog.Error("opening user database", "error", err, "path", cfg.SQLitePath)
		os.Exit(1)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := auth.NewService(store, tokens)

	// A broken model must not take the whole API down: auth, disease
	// lookup, and chat still work while prediction reports 503.
	var predictor server.Predictor
	classifier, err := loadClassifier(cfg)
	if err != nil {
		slog.Error("model unavailable, starting degraded", "error", err)
	} else {
		defer classifier.Close()
		predictor = classifier
		slog.Info("model loaded",
			"checkpoint", cfg.CheckpointPath, "backend", classifier.Backend())
	}

	router := server.NewRouter(server.NewHandlers(predictor, authSvc), tokens)

	slog.Info("listening", "addr", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadClassifier(cfg config.Config) (*inference.Classifier, error) {
	set, err := classes.Load(cfg.ClassesPath)
	if err != nil {
		return nil, err
	}

	pre := images.DefaultConfig()
	pre.InputSize = cfg.InputSize

	return inference.NewClassifier(inference.Config{
		CheckpointPath: cfg.CheckpointPath,
		SharedLibPath:  cfg.ORTLibraryPath,
		Backend:        inference.BackendAuto,
		Preprocess:     pre,
	}, set)
}
