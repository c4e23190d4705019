package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/leohubert/go-omdb/internal/health"
	"github.com/leohubert/go-omdb/pkg/logtb"
	"github.com/leohubert/go-omdb/pkg/omdb"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-Id"

type Options struct {
	Logger        *zap.Logger
	OmdbClient    *omdb.Client
	HealthHandler *health.Handler
	ListenAddr    string
	TLSCrt        string
	TLSKey        string
}

type Server struct {
	Options

	server *http.Server
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestIDMiddleware tags every request with an id, reusing the caller's
// X-Request-Id when present, and stores a logger carrying it in the context.
func RequestIDMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			ctx := logtb.InjectLogger(r.Context(), logger.With(zap.String("request_id", requestID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		duration := time.Since(start)

		logtb.ExtractLogger(r.Context()).Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("status", recorder.status),
			zap.Duration("duration", duration),
		)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.HealthHandler == nil {
		opts.HealthHandler = health.NewHandler(nil, "go-omdb")
	}

	router := mux.NewRouter()

	server := &Server{
		Options: opts,
		server: &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			Handler:           router,
		},
	}

	router.Use(RequestIDMiddleware(opts.Logger))
	router.Use(LoggerMiddleware)
	router.Use(CORSMiddleware)

	get := []string{http.MethodGet, http.MethodOptions}

	router.Path("/health").Methods(get...).HandlerFunc(opts.HealthHandler.HandleHealthCheck)
	router.Path("/health/key").Methods(get...).HandlerFunc(opts.HealthHandler.HandleKeyHealth)
	router.Path("/health/details").Methods(get...).HandlerFunc(opts.HealthHandler.HandleDetailedHealth)

	api := router.PathPrefix("/api").Subrouter()
	api.Path("/movies/{id}").Methods(get...).HandlerFunc(server.MovieHandler)
	api.Path("/titles").Methods(get...).HandlerFunc(server.TitleHandler)
	api.Path("/search").Methods(get...).HandlerFunc(server.SearchHandler)
	api.Path("/posters/{id}").Methods(get...).HandlerFunc(server.PosterHandler)

	return server
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.ListenAddr)
	if err != nil {
		return err
	}
	s.Logger.Sugar().Infof("http server listening on %s", listener.Addr().String())

	if s.TLSCrt != "" && s.TLSKey != "" {
		err = s.server.ServeTLS(listener, s.TLSCrt, s.TLSKey)
	} else {
		err = s.server.Serve(listener)
	}
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.Logger.Error("graceful shutdown failed", zap.Error(err))
		_ = s.server.Close()
	}
}
