package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/kyotei-ai/kyotei-cli/internal/api"
	"github.com/kyotei-ai/kyotei-cli/internal/config"
	"github.com/kyotei-ai/kyotei-cli/internal/session"
	"github.com/kyotei-ai/kyotei-cli/internal/storage"
)

func newClient() *api.Client {
	return api.New(api.Config{
		BaseURL: viper.GetString("server.url"),
		Timeout: viper.GetDuration("server.timeout"),
	})
}

func historyPath() string {
	if path := viper.GetString("history.path"); path != "" {
		return config.ExpandPath(path)
	}
	return config.DefaultHistoryPath()
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(historyPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return store, nil
}

// newAnalyzer builds the analyzer used by analyze and scan. With caching the
// local history doubles as an offline fallback; the returned cleanup closes
// the store and is safe to call either way.
func newAnalyzer(noCache bool) (session.Analyzer, func(), error) {
	client := newClient()
	if noCache {
		return client, func() {}, nil
	}

	store, err := openStore()
	if err != nil {
		// Analysis still works without history; degrade instead of failing.
		slog.Warn("continuing without local history", "error", err)
		return client, func() {}, nil
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close history database", "error", err)
		}
	}
	return &session.CachedAnalyzer{Analyzer: client, Cache: store}, cleanup, nil
}
