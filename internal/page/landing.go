package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"liquidityPortal/internal/stats"
)

//go:embed templates/*.html
var templateFS embed.FS

// StatsSource provides the current derived pool stats.
type StatsSource interface {
	Stats() stats.Derived
}

// StatCard is a titled value block.
type StatCard struct {
	Title string
	Value string
}

// StatCards builds the three stat blocks shown under the action cards.
func StatCards(d stats.Derived) []StatCard {
	return []StatCard{
		{Title: "💧 Total Liquidity", Value: "$" + d.Liquidity},
		{Title: "🔒 Reserved Liquidity", Value: "$" + d.Reserved},
		{Title: "📊 Utilization", Value: d.Utilization + "%"},
	}
}

type actionCard struct {
	ActionEntry
	Href string
}

type landingData struct {
	Title       string
	Description string
	Actions     []actionCard
	Stats       []StatCard
}

// Landing renders the liquidity landing page.
type Landing struct {
	source     StatsSource
	tmpl       *template.Template
	actionHref func(ActionEntry) string
}

// NewLanding parses the page templates. actionHref maps an action to the link
// placed on its card; nil links straight to the destination.
func NewLanding(source StatsSource, actionHref func(ActionEntry) string) (*Landing, error) {
	if source == nil {
		return nil, fmt.Errorf("stats source is nil")
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if actionHref == nil {
		actionHref = func(a ActionEntry) string { return a.Destination }
	}
	return &Landing{source: source, tmpl: tmpl, actionHref: actionHref}, nil
}

// Render writes the page for the current stats.
func (l *Landing) Render(w io.Writer) error {
	data := landingData{
		Title:       "🪙 Liquidity Pool",
		Description: "Manage your USDC liquidity. Choose an action below.",
		Stats:       StatCards(l.source.Stats()),
	}
	for _, a := range Actions() {
		data.Actions = append(data.Actions, actionCard{ActionEntry: a, Href: l.actionHref(a)})
	}

	var buf bytes.Buffer
	if err := l.tmpl.ExecuteTemplate(&buf, "landing.html", data); err != nil {
		return fmt.Errorf("render landing: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderStatCard writes a single stat block.
func (l *Landing) RenderStatCard(w io.Writer, card StatCard) error {
	return l.tmpl.ExecuteTemplate(w, "stat-card", card)
}
