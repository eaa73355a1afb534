package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/retry"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("the\nand\n"))
		case "/missing":
			http.NotFound(w, r)
		case "/busy":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/big":
			w.Write([]byte(strings.Repeat("x", 100)))
		}
	}))
	defer srv.Close()
	ctx := context.Background()

	data, err := Fetch(ctx, srv.Client(), srv.URL+"/ok", 0)
	if err != nil || string(data) != "the\nand\n" {
		t.Fatalf("Fetch(ok) = %q, %v", data, err)
	}

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/missing", 0)
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusNotFound {
		t.Errorf("Fetch(missing) err = %v, want 404 StatusError", err)
	}
	if retry.IsTransient(err) {
		t.Error("404 should not be retryable")
	}

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/busy", 0)
	if !retry.IsTransient(err) {
		t.Errorf("503 should be retryable, got %v", err)
	}

	if _, err := Fetch(ctx, srv.Client(), srv.URL+"/big", 10); err == nil {
		t.Error("oversized body should fail")
	}
}

func TestFetchWithRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var data []byte
	p := retry.Policy{Attempts: 3, Delay: time.Millisecond}
	err := p.Do(context.Background(), func() error {
		var err error
		data, err = Fetch(context.Background(), srv.Client(), srv.URL, 0)
		return err
	})
	if err != nil || string(data) != "ok" {
		t.Errorf("got %q, %v after %d hits", data, err, hits.Load())
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.UserAgent()
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.Client(), srv.URL, 0); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.HasPrefix(got, "wordcloud/") {
		t.Errorf("User-Agent = %q, want wordcloud/<version>", got)
	}
}
