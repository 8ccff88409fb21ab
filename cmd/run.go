package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/app"
	"github.com/abhisek/academy/internal/cache"
	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/llm"
	"github.com/abhisek/academy/internal/platform/logger"
	"github.com/abhisek/academy/internal/quiz"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/session"
	"github.com/abhisek/academy/internal/store"
	"github.com/abhisek/academy/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync()

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	cc, err := cache.Open(ctx, os.Getenv("ACADEMY_CACHE_URL"), st.KV())
	if err != nil {
		log.Warn("redis cache unavailable, using local cache", "error", err)
	}
	defer cc.Close()

	client, err := newTutor(ctx, cat, st, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The AI tutor will answer in offline mode.")
	}

	deps := screen.Deps{
		Catalog: cat,
		Session: session.New(session.ReposFrom(st), log),
		Tutor:   client,
		Cache:   cc,
		Log:     log,
		Shuffler: func() quiz.Shuffler {
			return quiz.NewShuffler(uint64(time.Now().UnixNano()))
		},
	}
	return app.Run(ctx, app.Options{Deps: deps})
}

// newTutor builds the tutor client. Without a usable provider it still
// returns a client that answers with the offline fallback, along with the
// reason.
func newTutor(ctx context.Context, cat *catalog.Catalog, st *store.Store, log *logger.Logger) (*tutor.Client, error) {
	pillars := make([]string, 0, len(cat.Pillars()))
	for _, p := range cat.Pillars() {
		pillars = append(pillars, p.Name)
	}

	cfg, ok := llm.ResolveConfig()
	if !ok {
		err := cfg.Validate()
		if err == nil {
			err = llm.ErrNotConfigured
		}
		return tutor.New(nil, log, tutor.WithPillars(pillars)), err
	}

	provider, err := llm.NewProvider(ctx, cfg, st.Events(), log)
	if err != nil {
		return tutor.New(nil, log, tutor.WithPillars(pillars)), err
	}
	log.Info("llm provider ready", "provider", cfg.Provider, "model", provider.ModelID())
	return tutor.New(provider, log, tutor.WithTimeout(cfg.Timeout), tutor.WithPillars(pillars)), nil
}
