package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/analytics"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/config"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/gamification"
	"github.com/kushagra0526/VoiceNotebook-QA/internal/store"
)

// env is everything a command needs: config, the open database, and the
// services layered on top. Close it when done.
type env struct {
	cfg     *config.Config
	db      *store.DB
	engine  *gamification.Engine
	service *analytics.Service
}

// openEnv loads config and wires the store, engine, and service. The
// gamification engine gets no tracker here: events emitted by CLI-driven
// goal changes are appended directly by the collector commands that need
// them.
func openEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	logger := logrus.StandardLogger()
	engine := gamification.New(db, nil, gamification.StrategyByName(cfg.Leveling), logger)
	return &env{
		cfg:     cfg,
		db:      db,
		engine:  engine,
		service: analytics.New(db, engine, logger),
	}, nil
}

func (e *env) Close() {
	_ = e.db.Close()
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
