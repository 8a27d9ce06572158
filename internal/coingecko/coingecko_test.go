package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPriceClient_SimplePrice(t *testing.T) {
	t.Run("parses prices and 24h change per id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v3/simple/price" {
				t.Errorf("Expected /api/v3/simple/price, got %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("vs_currencies"); got != "usd" {
				t.Errorf("Expected vs_currencies=usd, got %s", got)
			}
			if got := r.URL.Query().Get("ids"); got != "bitcoin,ethereum" {
				t.Errorf("Expected ids=bitcoin,ethereum, got %s", got)
			}

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // Test server response
			w.Write([]byte(`{
				"bitcoin": {"usd": 65000.12, "usd_24h_change": 1.5},
				"ethereum": {"usd": 3200.5, "usd_24h_change": -2.25}
			}`))
		}))
		defer server.Close()

		client := NewPriceClient(server.URL, 5*time.Second)
		quotes, err := client.SimplePrice(context.Background(), []string{"bitcoin", "ethereum"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if len(quotes) != 2 {
			t.Fatalf("Expected 2 quotes, got %d", len(quotes))
		}
		if quotes["bitcoin"].Price != 65000.12 || quotes["bitcoin"].Change24h != 1.5 {
			t.Errorf("Unexpected bitcoin quote: %+v", quotes["bitcoin"])
		}
		if quotes["ethereum"].Price != 3200.5 || quotes["ethereum"].Change24h != -2.25 {
			t.Errorf("Unexpected ethereum quote: %+v", quotes["ethereum"])
		}
	})

	t.Run("returns empty map for empty id list without calling the API", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Expected no API call for empty id list")
		}))
		defer server.Close()

		client := NewPriceClient(server.URL, 5*time.Second)
		quotes, err := client.SimplePrice(context.Background(), nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(quotes) != 0 {
			t.Errorf("Expected empty map, got %d entries", len(quotes))
		}
	})

	t.Run("returns error on non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewPriceClient(server.URL, 5*time.Second)
		if _, err := client.SimplePrice(context.Background(), []string{"bitcoin"}); err == nil {
			t.Error("Expected error on 429 response")
		}
	})

	t.Run("returns error on malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			//nolint:errcheck // Test server response
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewPriceClient(server.URL, 5*time.Second)
		if _, err := client.SimplePrice(context.Background(), []string{"bitcoin"}); err == nil {
			t.Error("Expected error on malformed response")
		}
	})
}
