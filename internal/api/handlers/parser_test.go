package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

func TestParserHandler_Parse(t *testing.T) {
	setupHandler := func(t *testing.T) *ParserHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewParserHandler(testutil.NewTestParserService(t, db, config.ParserConfig{}))
	}

	t.Run("parses text with rules parser", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/parse", request.ParseRequest{
			Text: "bought 0.5 BTC at $30,000",
		})
		w := httptest.NewRecorder()

		handler.Parse(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		got := testutil.DecodeResponse[ParseResponse](t, w.Body)
		if got.Source != service.ParseSourceRules {
			t.Errorf("Expected source %q, got %q", service.ParseSourceRules, got.Source)
		}
		if got.Suggestion.Symbol != "BTC" {
			t.Errorf("Expected symbol BTC, got %q", got.Suggestion.Symbol)
		}
	})

	t.Run("rejects empty text", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/parse", request.ParseRequest{
			Text: "   ",
		})
		w := httptest.NewRecorder()

		handler.Parse(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestParserHandler_ParserKey(t *testing.T) {
	t.Run("reports unconfigured key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewParserHandler(testutil.NewTestParserService(t, db, config.ParserConfig{}))

		req := httptest.NewRequest(http.MethodGet, "/api/system/parser-key", nil)
		w := httptest.NewRecorder()

		handler.ParserKeyStatus(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		got := testutil.DecodeResponse[map[string]bool](t, w.Body)
		if got["configured"] {
			t.Error("Expected configured to be false")
		}
	})

	t.Run("returns 409 when storing without encryption key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewParserHandler(testutil.NewTestParserService(t, db, config.ParserConfig{}))

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/system/parser-key", request.SetParserKeyRequest{
			APIKey: "sk-test",
		})
		w := httptest.NewRecorder()

		handler.SetParserKey(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}
