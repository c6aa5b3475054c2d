package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kiittsunne/wardle/internal/httpserver"
	"github.com/kiittsunne/wardle/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP game server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

// serve runs the server and the idle-round janitor until ctx is cancelled.
func (a *app) serve(ctx context.Context) error {
	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, a.factory(true), a.cfg)
	hs := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", a.cfg.Port).Msg("starting wardle server")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return mem.Janitor(gctx, a.cfg.IdleTTL/4, a.cfg.IdleTTL, func(now time.Time, n int) {
			if n > 0 {
				log.Info().Int("removed", n).Msg("swept idle rounds")
			}
			if c := srv.SweepClients(now, a.cfg.IdleTTL); c > 0 {
				log.Debug().Int("removed", c).Msg("swept idle rate-limit clients")
			}
		})
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return hs.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
