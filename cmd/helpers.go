package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/assistant"
	"github.com/leafdoctor/leafdoctor/internal/config"
	"github.com/leafdoctor/leafdoctor/internal/db"
	"github.com/leafdoctor/leafdoctor/internal/history"
	"github.com/leafdoctor/leafdoctor/internal/session"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `leafdoctor init` to create a config file", err)
	}
	return cfg, nil
}

// newAPIClient creates the inference server client from config.
func newAPIClient(cfg *config.Config) *api.Client {
	return api.New(cfg.ServerURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
}

// newAssistant creates the configured chat assistant provider.
func newAssistant(cfg *config.Config, backend *api.Client) (assistant.Provider, error) {
	return assistant.New(cfg.Assistant, backend)
}

// requireToken returns the session token or an actionable error.
func requireToken() (string, error) {
	token := session.Token()
	if token == "" {
		return "", fmt.Errorf("not logged in; run `leafdoctor login` first")
	}
	return token, nil
}

// openJournal opens the local diagnosis journal database. Callers must
// close the returned DB.
func openJournal(cfg *config.Config) (*db.DB, *history.Store, error) {
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, nil, err
	}

	database, err := db.Open(filepath.Join(dataDir, "leafdoctor.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening journal: %w", err)
	}
	return database, history.NewStore(database), nil
}
