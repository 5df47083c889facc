package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/synthaser/pkg/adapters/http"
	"github.com/aretw0/synthaser/pkg/rules"
)

const shutdownTimeout = 5 * time.Second

// Handler builds the HTTP API for env, with metrics mounted.
func (env *Env) Handler(streams *httpAdapter.StreamManager) http.Handler {
	return httpAdapter.NewHandler(env.Engine,
		httpAdapter.WithLogger(env.Logger),
		httpAdapter.WithMetrics(env.Metrics.Handler()),
		httpAdapter.WithStreams(streams),
	)
}

// ReloadEvents returns a reload listener that publishes every reload
// attempt on streams.
func ReloadEvents(streams *httpAdapter.StreamManager) func(*rules.Forest, error) {
	return func(f *rules.Forest, err error) {
		ev := map[string]any{"type": "reload"}
		if err != nil {
			ev["error"] = err.Error()
		} else {
			ev["rules"] = f.Len()
		}
		if msg, err := json.Marshal(ev); err == nil {
			streams.Broadcast(string(msg))
		}
	}
}

// Serve runs the HTTP API on addr until ctx is done, then shuts down
// gracefully. With watch set, the rule file is reloaded on change.
func (env *Env) Serve(ctx context.Context, addr string, streams *httpAdapter.StreamManager, watch bool) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           env.Handler(streams),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if watch {
		go func() {
			if err := env.Engine.WatchRules(ctx); err != nil {
				env.Logger.Warn("rule watching disabled", "error", err)
			}
		}()
	}

	serverErrors := make(chan error, 1)
	go func() {
		env.Logger.Info("server listening", "addr", addr, "watch", watch)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		env.Logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			env.Logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		env.Logger.Info("server stopped")
		return nil
	}
}
