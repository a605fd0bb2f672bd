package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"playbook/internal/application"
	"playbook/internal/metrics"
	"playbook/pkg/config"
	"playbook/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const shutdownTimeout = 10 * time.Second

// Server exposes the dashboard API. It runs under the service manager.
type Server struct {
	cfg     config.HTTPConfig
	handler *Handler
	metrics *metrics.Recorder
	logger  *logger.Logger

	srv *http.Server
}

func NewServer(cfg config.HTTPConfig, session config.SessionConfig, app *application.Service, recorder *metrics.Recorder, log *logger.Logger) *Server {
	return &Server{
		cfg:     cfg,
		handler: NewHandler(app, session, log),
		metrics: recorder,
		logger:  log,
	}
}

func (s *Server) Name() string {
	return "http"
}

func (s *Server) Init() error {
	s.srv = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("http server listening on %s", s.cfg.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop() {
	if s.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("http shutdown: %v", err)
	}
}

// Routes builds the full handler chain: CORS, request id and access log
// around the router, route metrics inside it.
func (s *Server) Routes() http.Handler {
	h := s.handler
	r := mux.NewRouter()
	r.Use(metricsMiddleware(s.metrics))

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", h.Logout).Methods(http.MethodPost)
	r.HandleFunc("/api/teams", h.Teams).Methods(http.MethodGet)
	r.HandleFunc("/api/banners/placeholder.png", h.Placeholder).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware(h.auth(), h.session.CookieName))

	api.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	api.HandleFunc("/me/preferences", h.UpdatePreferences).Methods(http.MethodPut)
	api.HandleFunc("/schedule", h.Schedule).Methods(http.MethodGet)
	api.HandleFunc("/schedule/season/{year:[0-9]+}.xlsx", h.SeasonWorkbook).Methods(http.MethodGet)
	api.HandleFunc("/schedule/season/{year:[0-9]+}", h.SeasonSchedule).Methods(http.MethodGet)
	api.HandleFunc("/schedule/season/{year:[0-9]+}/sheet", h.PublishSeason).Methods(http.MethodPost)
	api.HandleFunc("/games/{gamePk:[0-9]+}", h.Game).Methods(http.MethodGet)
	api.HandleFunc("/games/{gamePk:[0-9]+}/plays", h.Plays).Methods(http.MethodGet)
	api.HandleFunc("/games/{gamePk:[0-9]+}/plays/{playId}", h.Play).Methods(http.MethodGet)
	api.HandleFunc("/games/{gamePk:[0-9]+}/plays/{playId}/ask", h.Ask).Methods(http.MethodPost)
	api.HandleFunc("/games/{gamePk:[0-9]+}/lineups", h.Lineups).Methods(http.MethodGet)
	api.HandleFunc("/games/{gamePk:[0-9]+}/highlights", h.Highlights).Methods(http.MethodGet)
	api.HandleFunc("/banners/{gamePk:[0-9]+}/{playId}.png", h.Banner).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(requestIDMiddleware(loggingMiddleware(s.logger)(r)))
}
