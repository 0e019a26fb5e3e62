package itemdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `[
	{"Name": "Rusted Gear", "Category": "loot", "Verdict": "RECYCLE", "Sell Price": 40},
	{"Name": "Oil", "Category": "loot", "Verdict": "SELL", "Recycle Value Gain %": 12.5}
]`

const sampleCSV = "Name,Category,Verdict,Sell Value\n" +
	"Rusted Gear,loot,RECYCLE,40\n" +
	"Oil,loot,SELL,\n"

// TestFetch verifies the remote JSON endpoint decodes into typed rows.
func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	table, err := Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}

	row := table.Rows[0]
	if row.Name != "Rusted Gear" || row.Verdict != "RECYCLE" || row.SellPrice != "40" {
		t.Errorf("row = %+v", row)
	}
	// Non-integer numbers keep their fraction.
	if table.Rows[1].RecycleValueGain != "12.5" {
		t.Errorf("RecycleValueGain = %q, want 12.5", table.Rows[1].RecycleValueGain)
	}
}

// TestFetchBadStatus verifies non-200 responses fail.
func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("no error for status 500")
	}
}

// TestLoadCSV verifies the header-mapped fallback file parses.
func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}
	if table.Rows[0].SellPrice != "40" {
		t.Errorf("SellPrice = %q, want 40 via the Sell Value column", table.Rows[0].SellPrice)
	}
}

// TestLoadFallsBackToCSV verifies the remote failure path uses the
// local file, and that both failing is an error.
func TestLoadFallsBackToCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "items.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(context.Background(), srv.URL, path)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Errorf("Len = %d, want 2", table.Len())
	}

	if _, err := Load(context.Background(), srv.URL, filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("no error when both sources fail")
	}
}
