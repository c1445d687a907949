package hc

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"liquidityPortal/internal/handler/render"
	"liquidityPortal/internal/stats"
)

// StatusSource reports whether pool readings have arrived.
type StatusSource interface {
	Status() stats.Status
}

// Handle serves uptime, version and board status.
func Handle(version string, source StatusSource) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(version, source))
	return r
}

func handle(version string, source StatusSource) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)
		resp := render.H{
			"uptime":  uptime.String(),
			"version": version,
		}
		if source != nil {
			resp["pool"] = source.Status()
		}
		render.JSON(w, resp)
	}
}
