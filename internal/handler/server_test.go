package handler

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidityPortal/internal/metrics"
	"liquidityPortal/internal/model"
	"liquidityPortal/internal/stats"
)

const testPool = "0x04825CDa198D4134f6Bb914f097b9ab141825bF4"

func newTestServer(t *testing.T, board *stats.Board) http.Handler {
	t.Helper()
	srv, err := New(Options{
		Version: "test",
		Pool:    testPool,
		Metrics: metrics.New().Handler(),
	}, board, nil)
	require.NoError(t, err)
	return srv.Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func readyBoard() *stats.Board {
	board := stats.NewBoard(nil)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	board.SetTotal(model.Reading{Field: model.FieldTotalLiquidity, Raw: big.NewInt(1_000_000_000), FetchedAt: at})
	board.SetReserved(model.Reading{Field: model.FieldReservedLiquidity, Raw: big.NewInt(250_000_000), FetchedAt: at})
	return board
}

func TestLandingPage(t *testing.T) {
	h := newTestServer(t, readyBoard())

	rec := get(t, h, "/liquidity")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<p>$1000.00</p>")
	assert.Contains(t, body, "<p>$250.00</p>")
	assert.Contains(t, body, "<p>25.00%</p>")
	assert.Contains(t, body, `href="/liquidity/actions/withdraw"`)
}

func TestLandingPageAwaiting(t *testing.T) {
	h := newTestServer(t, stats.NewBoard(nil))

	rec := get(t, h, "/liquidity/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>$0</p>")
	assert.Contains(t, rec.Body.String(), "<p>0.00%</p>")
}

func TestRootRedirect(t *testing.T) {
	rec := get(t, newTestServer(t, stats.NewBoard(nil)), "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/liquidity", rec.Header().Get("Location"))
}

func TestActionRedirect(t *testing.T) {
	h := newTestServer(t, stats.NewBoard(nil))

	rec := get(t, h, "/liquidity/actions/withdraw")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/liquidity/withdraw", rec.Header().Get("Location"))

	rec = get(t, h, "/liquidity/actions/claim")
	assert.Equal(t, "/liquidity/claim", rec.Header().Get("Location"))

	rec = get(t, h, "/liquidity/actions/borrow")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestStatsAPI(t *testing.T) {
	h := newTestServer(t, readyBoard())

	rec := get(t, h, "/api/liquidity/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var got statsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, statsView{
		Status:      stats.StatusReady,
		Pool:        testPool,
		Liquidity:   "1000.00",
		Reserved:    "250.00",
		Utilization: "25.00",
		TotalRaw:    "1000000000",
		ReservedRaw: "250000000",
		UpdatedAt:   "2024-05-01T12:00:00Z",
	}, got)
}

func TestStatsAPIAwaiting(t *testing.T) {
	h := newTestServer(t, stats.NewBoard(nil))

	rec := get(t, h, "/api/liquidity/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var got statsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, stats.StatusAwaiting, got.Status)
	assert.Equal(t, "0", got.Liquidity)
	assert.Equal(t, "0.00", got.Utilization)
	assert.Empty(t, got.TotalRaw)
	assert.Empty(t, got.UpdatedAt)
}

func TestStatsAPICORS(t *testing.T) {
	h := newTestServer(t, readyBoard())

	req := httptest.NewRequest(http.MethodGet, "/api/liquidity/stats", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, readyBoard())

	rec := get(t, h, "/hc")
	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "test", health["version"])
	assert.Equal(t, "ready", health["pool"])

	rec = get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "liquidity_utilization_percent")
}

func TestNotFound(t *testing.T) {
	rec := get(t, newTestServer(t, stats.NewBoard(nil)), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
