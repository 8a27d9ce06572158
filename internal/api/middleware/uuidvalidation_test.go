package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

func TestValidateUUIDMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("passes through valid UUID", func(t *testing.T) {
		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/asset/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		ValidateUUIDMiddleware(okHandler).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects malformed UUID", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/asset/not-a-uuid",
			map[string]string{"uuid": "not-a-uuid"})
		w := httptest.NewRecorder()

		ValidateUUIDMiddleware(okHandler).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects missing UUID parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/asset/", nil)
		w := httptest.NewRecorder()

		ValidateUUIDMiddleware(okHandler).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
