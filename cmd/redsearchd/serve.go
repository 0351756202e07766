package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamware/redsearch/internal/docmodel"
	"github.com/dreamware/redsearch/internal/monitor"
	"github.com/dreamware/redsearch/internal/queryparse"
)

func newServeCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the redsearchd HTTP server",
		Long: `serve exposes the configured collections over HTTP:

  GET  /health                               - liveness/readiness
  POST /collections/{name}/documents         - index one document (JSON body)
  GET  /collections/{name}/search?q=...      - run a query-string search

Press Ctrl+C to gracefully shut down the server.`,
		Example: `  redsearchd serve --config redsearch.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer syncLogger(a)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			hm := monitor.New(parseHealthInterval(a.cfg.HealthInterval), monitor.StoreCheck(a.store))
			hm.SetOnUnhealthy(func(err error) {
				a.log.Errorw("store health check failing", "error", err)
			})
			go hm.Start(ctx)

			mux := http.NewServeMux()
			mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
				h := hm.Snapshot()
				w.Header().Set("Content-Type", "application/json")
				if h.Status == monitor.StatusUnhealthy {
					w.WriteHeader(http.StatusServiceUnavailable)
				}
				json.NewEncoder(w).Encode(h)
			})
			mux.HandleFunc("/collections/", func(w http.ResponseWriter, r *http.Request) {
				handleCollectionRequest(a, w, r)
			})

			srv := &http.Server{
				Addr:              a.cfg.Listen,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			a.log.Infow("redsearchd listening", "addr", a.cfg.Listen, "store", a.cfg.Store)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			a.log.Info("redsearchd stopped")
			return nil
		},
	}

	return cmd
}

func syncLogger(a *app) {
	_ = a.log.Sync()
}

func parseHealthInterval(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// handleCollectionRequest dispatches /collections/{name}/documents and
// /collections/{name}/search, the way node's /shard/{shardID}/... routes
// dispatch on a trimmed path suffix.
func handleCollectionRequest(a *app, w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/collections/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 {
		http.Error(w, "expected /collections/{name}/documents or /collections/{name}/search", http.StatusNotFound)
		return
	}
	name, action := parts[0], parts[1]

	col, err := a.collection(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	switch {
	case action == "documents" && r.Method == http.MethodPost:
		var doc docmodel.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := col.IndexDocument(r.Context(), doc); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.WriteHeader(http.StatusCreated)

	case action == "search" && r.Method == http.MethodGet:
		q := r.URL.Query().Get("q")
		expr, err := queryparse.Compile(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ids, err := col.Search(r.Context(), expr)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Ids []string `json:"ids"`
		}{Ids: ids})

	default:
		http.Error(w, "unsupported collection action", http.StatusMethodNotAllowed)
	}
}
