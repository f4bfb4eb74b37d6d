package text

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/internal/cache"
)

func newESVServer(t *testing.T, handler http.HandlerFunc) *ESV {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &ESV{BaseURL: srv.URL, APIKey: "secret", Client: srv.Client()}
}

func TestESVFetch(t *testing.T) {
	esv := newESVServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/passage/text/" {
			t.Errorf("path = %s, want /v3/passage/text/", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Token secret" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		if q.Get("q") != "John 3:16" {
			t.Errorf("q = %q, want John 3:16", q.Get("q"))
		}
		if q.Get(KeyIncludeReferences) != "false" {
			t.Errorf("%s = %q, want false", KeyIncludeReferences, q.Get(KeyIncludeReferences))
		}
		_ = json.NewEncoder(w).Encode(esvResponse{
			Query:     q.Get("q"),
			Canonical: "John 3:16",
			Passages:  []string{"  For God so loved the world  \n"},
		})
	})

	got, err := esv.Fetch(context.Background(), mustPassage(t, "John", 3, 16), DefaultOptions())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != "For God so loved the world" {
		t.Errorf("Fetch() = %q", got)
	}
}

func TestESVErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"Invalid token."}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"passages": [`))
			},
			want: errors.ErrInvalidInput,
		},
		{
			name: "no passages",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"passages": []}`))
			},
			want: errors.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			esv := newESVServer(t, tt.handler)
			_, err := esv.Fetch(context.Background(), mustPassage(t, "Gen", 1), DefaultOptions())
			if err == nil {
				t.Fatal("Fetch() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Fetch() error = %v, want %v", err, tt.want)
			}
		})
	}

	var ioErr *errors.IOError
	esv := newESVServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := esv.Fetch(context.Background(), mustPassage(t, "Gen", 1), DefaultOptions())
	if !errors.As(err, &ioErr) {
		t.Errorf("Fetch() error = %v, want IOError", err)
	}
}

func TestESVRequiresKey(t *testing.T) {
	esv := NewESV("")
	if _, err := esv.Fetch(context.Background(), mustPassage(t, "Gen", 1), DefaultOptions()); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Fetch() error = %v, want ErrInvalidInput", err)
	}
	if esv.BaseURL != DefaultESVBaseURL || esv.Name() != "esv" {
		t.Errorf("NewESV() = %+v", esv)
	}
}

func TestServiceWithESV(t *testing.T) {
	var hits int
	esv := newESVServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(esvResponse{Passages: []string{r.URL.Query().Get("q")}})
	})
	svc := NewService(esv, cache.Limits{})

	for i := 0; i < 2; i++ {
		got, truncated, err := svc.Passage(context.Background(), mustPassage(t, "Ps", 117), DefaultOptions())
		if err != nil {
			t.Fatalf("Passage() error = %v", err)
		}
		if got != "Psalm 117" || truncated {
			t.Errorf("Passage() = %q, %v", got, truncated)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}
