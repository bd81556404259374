package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestHTTPSourceOpenTasks verifies decoding of the remote payload.
func TestHTTPSourceOpenTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/open" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"auth-1","title":"fix login","priority":1},
			{"id":"web-3","title":"ship banner","priority":0,"project":"web"}
		]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL)
	records, err := src.OpenTasks(context.Background())
	if err != nil {
		t.Fatalf("OpenTasks: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "auth-1" || records[0].Priority != 1 {
		t.Errorf("record[0] = %+v", records[0])
	}
	if records[1].Project != "web" {
		t.Errorf("record[1].Project = %q, want %q", records[1].Project, "web")
	}
}

// TestHTTPSourceRejectsErrorStatus verifies non-200 responses surface as
// errors.
func TestHTTPSourceRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL)
	if _, err := src.OpenTasks(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
