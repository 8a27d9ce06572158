package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

func TestSnapshotHandler_Export(t *testing.T) {
	t.Run("exports snapshot with download header", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSnapshotHandler(testutil.NewTestSnapshotService(t, db))
		asset := testutil.NewAsset().Build(t, db)
		testutil.CreateBuy(t, db, asset.ID, 1, 100)

		req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
		w := httptest.NewRecorder()

		handler.Export(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if disposition := w.Header().Get("Content-Disposition"); !strings.Contains(disposition, "attachment") {
			t.Errorf("Expected attachment disposition, got %q", disposition)
		}

		snapshot := testutil.DecodeResponse[model.Snapshot](t, w.Body)
		if snapshot.Version != model.SnapshotVersion {
			t.Errorf("Expected version %d, got %d", model.SnapshotVersion, snapshot.Version)
		}
		if len(snapshot.Assets) != 1 || len(snapshot.Transactions) != 1 {
			t.Errorf("Expected 1 asset and 1 transaction, got %d and %d",
				len(snapshot.Assets), len(snapshot.Transactions))
		}
	})
}

func TestSnapshotHandler_Import(t *testing.T) {
	t.Run("imports valid snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSnapshotHandler(testutil.NewTestSnapshotService(t, db))

		assetID := testutil.MakeID()
		snapshot := model.Snapshot{
			Version:    model.SnapshotVersion,
			ExportedAt: time.Now().UTC(),
			Assets: []model.Asset{
				{ID: assetID, Name: "Bitcoin", Symbol: "BTC", CoingeckoID: "bitcoin", Color: "#F7931A"},
			},
			Transactions: []model.Transaction{
				{
					ID:      testutil.MakeID(),
					AssetID: assetID,
					Type:    "buy",
					Amount:  1,
					Price:   100,
					Total:   100,
					Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				},
			},
		}

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/snapshot", snapshot)
		w := httptest.NewRecorder()

		handler.Import(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		result := testutil.DecodeResponse[model.ImportResult](t, w.Body)
		if result.Assets != 1 || result.Transactions != 1 {
			t.Errorf("Expected 1 asset and 1 transaction imported, got %d and %d",
				result.Assets, result.Transactions)
		}
	})

	t.Run("rejects snapshot with unknown version", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSnapshotHandler(testutil.NewTestSnapshotService(t, db))

		snapshot := model.Snapshot{Version: 99}
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/snapshot", snapshot)
		w := httptest.NewRecorder()

		handler.Import(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects non-JSON body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSnapshotHandler(testutil.NewTestSnapshotService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/snapshot", strings.NewReader("not json"))
		w := httptest.NewRecorder()

		handler.Import(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSnapshotHandler_Clear(t *testing.T) {
	t.Run("clears portfolio and returns 204", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSnapshotHandler(testutil.NewTestSnapshotService(t, db))
		asset := testutil.NewAsset().Build(t, db)
		testutil.CreateBuy(t, db, asset.ID, 1, 100)

		req := httptest.NewRequest(http.MethodDelete, "/api/snapshot", nil)
		w := httptest.NewRecorder()

		handler.Clear(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		var count int
		//nolint:errcheck // Test assertion - scan failure would cause test to fail anyway
		db.QueryRow(`SELECT COUNT(*) FROM asset`).Scan(&count)
		if count != 0 {
			t.Errorf("Expected empty asset table, %d rows remain", count)
		}
	})
}
