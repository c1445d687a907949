package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"liquidityPortal/internal/handler/hc"
	"liquidityPortal/internal/handler/render"
	"liquidityPortal/internal/page"
	"liquidityPortal/internal/stats"
)

// Options configures the HTTP surface.
type Options struct {
	Version     string
	Pool        string
	CORSOrigins []string
	Metrics     http.Handler
}

// Server wires the landing page, stats API, health and metrics routes.
type Server struct {
	opts    Options
	board   *stats.Board
	landing *page.Landing
	logger  *zap.Logger
}

// New builds a Server reading from board.
func New(opts Options, board *stats.Board, logger *zap.Logger) (*Server, error) {
	if board == nil {
		return nil, fmt.Errorf("board is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	landing, err := page.NewLanding(board, func(a page.ActionEntry) string {
		return "/liquidity/actions/" + a.Key
	})
	if err != nil {
		return nil, err
	}
	return &Server{opts: opts, board: board, landing: landing, logger: logger}, nil
}

// Handler returns the root router.
func (s *Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.RequestID)
	mux.Use(requestLogger(s.logger))

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w, errors.New("not found"))
	})

	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/liquidity", http.StatusFound)
	})
	mux.Get("/liquidity", landingHandler(s.landing, s.logger))
	mux.Get("/liquidity/actions/{action}", actionHandler())

	mux.Route("/api", func(r chi.Router) {
		r.Use(s.cors().Handler)
		r.Get("/liquidity/stats", statsHandler(s.board, s.opts.Pool))
	})

	mux.Mount("/hc", hc.Handle(s.opts.Version, s.board))
	if s.opts.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	return mux
}

func (s *Server) cors() *cors.Cors {
	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	})
}
