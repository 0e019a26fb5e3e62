package itemdb

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultURL is the remote item database endpoint.
const DefaultURL = "https://ghostworld073.pythonanywhere.com/arc_raiders_items"

var httpClient = &http.Client{Timeout: 15 * time.Second}

// Load fetches the item table from the remote endpoint, falling back to
// the local CSV file when the endpoint is unreachable. An error is
// returned only when both sources fail.
func Load(ctx context.Context, url, csvPath string) (*Table, error) {
	table, remoteErr := Fetch(ctx, url)
	if remoteErr == nil {
		return table, nil
	}
	log.Warn().Err(remoteErr).Str("url", url).Msg("remote item database unavailable, using local CSV")

	table, csvErr := LoadCSV(csvPath)
	if csvErr != nil {
		return nil, fmt.Errorf("item database: remote failed (%v), local fallback failed: %w", remoteErr, csvErr)
	}
	return table, nil
}

// Fetch downloads the item table as a JSON array of records.
func Fetch(ctx context.Context, url string) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch item database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch item database: unexpected status %s", resp.Status)
	}

	var records []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode item database: %w", err)
	}

	table := &Table{Rows: make([]Row, 0, len(records))}
	for _, rec := range records {
		flat := make(map[string]string, len(rec))
		for k, v := range rec {
			flat[k] = stringifyValue(v)
		}
		table.Rows = append(table.Rows, rowFromRecord(flat))
	}
	return table, nil
}

// LoadCSV reads the item table from a header-mapped CSV file.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open item database: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read item database header: %w", err)
	}

	table := &Table{}
	for {
		fields, err := r.Read()
		if err != nil {
			break
		}
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(fields) {
				rec[col] = fields[i]
			}
		}
		table.Rows = append(table.Rows, rowFromRecord(rec))
	}
	return table, nil
}

// stringifyValue renders a decoded JSON value the way the original
// spreadsheet cell looked. Whole-number floats drop the fraction.
func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if math.Abs(t-math.Trunc(t)) < 1e-9 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
