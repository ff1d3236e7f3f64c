package session

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/AimceptionGian/FlexiPlan/pkg/config"
	"github.com/AimceptionGian/FlexiPlan/pkg/pager"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"
)

func TestOpen_Backends(t *testing.T) {
	c := transit.Connection{
		From:     transit.Checkpoint{Station: transit.Location{Name: "Bern"}, Departure: "2026-02-25T08:02:00+0100"},
		To:       transit.Checkpoint{Station: transit.Location{Name: "Thun"}, Arrival: "2026-02-25T08:20:00+0100"},
		Duration: "00d00:18:00",
	}

	for _, backend := range []string{config.BackendFile, config.BackendSQLite, config.BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			sess, err := Open(config.AppConfig{StorageBackend: backend, DataDir: dir}, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer sess.Close()

			if _, err := sess.Store.Add(context.Background(), c); err != nil {
				t.Fatalf("add failed: %v", err)
			}
			list, err := sess.Store.Load(context.Background())
			if err != nil || len(list) != 1 {
				t.Fatalf("expected one favorite, got %d (err %v)", len(list), err)
			}

			if backend == config.BackendSQLite {
				if _, err := os.Stat(filepath.Join(dir, SQLiteFileName)); err != nil {
					t.Errorf("expected sqlite database in data dir: %v", err)
				}
			}
		})
	}
}

func TestSession_NewPagerUsesConfiguredAPI(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"connections":[{"from":{"station":{"name":"Bern"},"departure":"2026-02-25T08:02:00+0100"},"to":{"station":{"name":"Thun"}},"duration":"00d00:18:00","sections":[]}]}`))
	}))
	defer server.Close()

	sess, err := Open(config.AppConfig{
		StorageBackend: config.BackendMemory,
		APIBaseURL:     server.URL,
		ResultsLimit:   6,
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer sess.Close()

	p := sess.NewPager()
	if err := p.Search(context.Background(), "Bern", "Thun", pager.Options{}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(p.Entries()) != 1 {
		t.Errorf("expected 1 entry, got %d", len(p.Entries()))
	}
	if gotLimit != "6" {
		t.Errorf("expected configured limit to reach the API, got %q", gotLimit)
	}
}
