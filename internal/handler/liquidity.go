package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"go.uber.org/zap"

	"liquidityPortal/internal/handler/render"
	"liquidityPortal/internal/page"
	"liquidityPortal/internal/stats"
)

// redirectNavigator turns page navigation into an HTTP redirect.
type redirectNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func (n redirectNavigator) Navigate(path string) {
	http.Redirect(n.w, n.r, path, http.StatusSeeOther)
}

func landingHandler(landing *page.Landing, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := landing.Render(&buf); err != nil {
			logger.Error("render landing failed", zap.Error(err))
			render.InternalError(w, err)
			return
		}
		render.HTML(w, buf.Bytes())
	}
}

func actionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "action")
		if err := page.Activate(key, redirectNavigator{w: w, r: r}); err != nil {
			render.NotFound(w, err)
		}
	}
}

type statsView struct {
	Status      stats.Status `json:"status"`
	Pool        string       `json:"pool"`
	Liquidity   string       `json:"liquidity"`
	Reserved    string       `json:"reserved"`
	Utilization string       `json:"utilization"`
	TotalRaw    string       `json:"total_raw,omitempty"`
	ReservedRaw string       `json:"reserved_raw,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
}

func statsHandler(board *stats.Board, pool string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := board.View()
		resp := statsView{
			Status:      view.Status,
			Pool:        pool,
			Liquidity:   view.Stats.Liquidity,
			Reserved:    view.Stats.Reserved,
			Utilization: view.Stats.Utilization,
		}
		if view.Total.Present() {
			resp.TotalRaw = view.Total.Raw.String()
		}
		if view.Reserved.Present() {
			resp.ReservedRaw = view.Reserved.Raw.String()
		}
		if !view.UpdatedAt.IsZero() {
			resp.UpdatedAt = view.UpdatedAt.UTC().Format(time.RFC3339)
		}
		render.JSON(w, resp)
	}
}
