package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"suited/internal/coordinator"
	"suited/internal/history"
	"suited/pkg/types"
)

// Service defines the coordinator methods required by the HTTP API layer.
type Service interface {
	RegisterSuite(cfg types.SuiteConfiguration) error
	DeregisterSuite(name string) error
	LoadSuite(ctx context.Context, name string) (coordinator.LoadResult, error)
	UnloadSuite(name string) (bool, error)
	Pin(name string) error
	Unpin(name string) error
	SuiteStatus(name string) (types.SuiteStatus, error)
	Status() types.StatusReport
	OptimizeMemory() (types.OptimizationReport, error)
}

// HistorySource serves the persisted lifecycle event log.
type HistorySource interface {
	Recent(limit int) ([]history.Entry, error)
}

// Options carries optional collaborators for the mux.
type Options struct {
	// ListModels backs GET /models; nil disables the endpoint.
	ListModels func() ([]types.ModelFile, error)
	// History backs GET /history; nil disables the endpoint.
	History HistorySource
}

func NewMux(svc Service, opts Options) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/suites", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var cfg types.SuiteConfiguration
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := svc.RegisterSuite(cfg); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, types.RegisterResponse{Name: cfg.Name, Registered: true})
	})

	r.Delete("/suites/{name}", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeregisterSuite(chi.URLParam(r, "name")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/suites/{name}", func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.SuiteStatus(chi.URLParam(r, "name"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	})

	r.Post("/suites/{name}/load", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		lvl := requestLogLevel(r)
		start := time.Now()
		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		res, err := svc.LoadSuite(joinedCtx, name)
		if err != nil {
			// If context was canceled (client disconnect), just return.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			if lvl >= LevelError && zlog != nil {
				z := zlog.Error().Str("suite", name).Dur("dur", time.Since(start))
				if rid := middleware.GetReqID(r.Context()); rid != "" {
					z = z.Str("request_id", rid)
				}
				z.Err(err).Msg("load failed")
			}
			writeError(w, err)
			return
		}
		if lvl >= LevelInfo && zlog != nil {
			z := zlog.Info().Str("suite", name).Bool("cache_hit", res.CacheHit).Dur("dur", time.Since(start))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("load done")
		}
		writeJSON(w, http.StatusOK, types.LoadResponse{
			Name:     name,
			Loaded:   true,
			CacheHit: res.CacheHit,
			OpID:     res.OpID,
		})
	})

	r.Post("/suites/{name}/unload", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		wasLoaded, err := svc.UnloadSuite(name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"name": name, "was_loaded": wasLoaded})
	})

	r.Post("/suites/{name}/pin", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Pin(chi.URLParam(r, "name")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/suites/{name}/unpin", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Unpin(chi.URLParam(r, "name")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Post("/optimize", func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.OptimizeMemory()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	if opts.ListModels != nil {
		r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
			models, err := opts.ListModels()
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, types.ModelsResponse{Models: models})
		})
	}

	if opts.History != nil {
		r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
			limit := 50
			if v := r.URL.Query().Get("limit"); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					limit = n
				}
			}
			entries, err := opts.History.Recent(limit)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"events": entries})
		})
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// writeJSON encodes v with a JSON content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && zlog != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}
