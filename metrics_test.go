package tintero

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lromero/tintero/stats"
)

func newVisitContext(cookie *http.Cookie) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestRecordVisitSkipsExemptBrowser(t *testing.T) {
	app := &App{Stats: stats.NewStore(filepath.Join(t.TempDir(), "stats.json"))}

	exempt := &http.Cookie{Name: metricsExemptCookie, Value: "1"}
	app.recordVisit(newVisitContext(exempt), "hello-world")
	app.recordVisit(newVisitContext(exempt), stats.HomePath)

	ledger := app.Stats.Load()
	if ledger.Total != 0 || len(ledger.Daily) != 0 || len(ledger.Posts) != 0 {
		t.Fatalf("exempt visits touched the ledger: %+v", ledger)
	}

	app.recordVisit(newVisitContext(nil), "hello-world")
	ledger = app.Stats.Load()
	if ledger.Total != 1 || ledger.Posts["hello-world"] != 1 {
		t.Fatalf("plain visit not counted: %+v", ledger)
	}
}

func TestExcludedFromMetrics(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
		want   bool
	}{
		{"no cookie", nil, false},
		{"marker set", &http.Cookie{Name: metricsExemptCookie, Value: "1"}, true},
		{"empty value", &http.Cookie{Name: metricsExemptCookie, Value: ""}, false},
		{"other cookie", &http.Cookie{Name: "session", Value: "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excludedFromMetrics(newVisitContext(tt.cookie)); got != tt.want {
				t.Errorf("excludedFromMetrics = %v, want %v", got, tt.want)
			}
		})
	}
}
