package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", "gemini-1.5-pro")
	c.baseURL = srv.URL
	c.retryDelay = time.Millisecond
	return c
}

func TestCountTokens(t *testing.T) {
	var gotPath, gotKey string
	var gotBody countRequest

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		json.NewEncoder(w).Encode(countResponse{TotalTokens: 31})
	})

	n, err := c.CountTokens(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("CountTokens returned error: %v", err)
	}
	if n != 31 {
		t.Errorf("CountTokens = %d, want 31", n)
	}
	if want := "/v1beta/models/gemini-1.5-pro:countTokens"; gotPath != want {
		t.Errorf("request path = %q, want %q", gotPath, want)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q, want %q", gotKey, "test-key")
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "hello world" {
		t.Errorf("request carried %+v, want the prompt text", gotBody)
	}
}

func TestGenerate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if want := "/v1beta/models/gemini-1.5-pro:generateContent"; r.URL.Path != want {
			t.Errorf("request path = %q, want %q", r.URL.Path, want)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"- Faster exports\n"},{"text":"- Fewer timeouts\n"}]}}]}`))
	})

	got, err := c.Generate(context.Background(), "summarize")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if want := "- Faster exports\n- Fewer timeouts"; got != want {
		t.Errorf("Generate = %q, want %q", got, want)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	if _, err := c.Generate(context.Background(), "summarize"); err == nil {
		t.Fatal("Generate expected an error for an empty candidate list")
	}
}

func TestRetriesRateLimitThenSucceeds(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(countResponse{TotalTokens: 5})
	})

	n, err := c.CountTokens(context.Background(), "x")
	if err != nil {
		t.Fatalf("CountTokens returned error after retries: %v", err)
	}
	if n != 5 {
		t.Errorf("CountTokens = %d, want 5", n)
	}
	if calls != 3 {
		t.Errorf("server saw %d calls, want 3", calls)
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"invalid model","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := c.CountTokens(context.Background(), "x")
	if err == nil {
		t.Fatal("CountTokens expected an error on 400")
	}
	if !strings.Contains(err.Error(), "invalid model") {
		t.Errorf("error = %v, want the API message surfaced", err)
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want exactly 1", calls)
	}
}

func TestMissingAPIKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient("", "gemini-1.5-pro")
	c.baseURL = srv.URL

	if _, err := c.CountTokens(context.Background(), "x"); err == nil {
		t.Error("CountTokens expected an error without an api key")
	}
	if _, err := c.Generate(context.Background(), "x"); err == nil {
		t.Error("Generate expected an error without an api key")
	}
	if calls != 0 {
		t.Errorf("server saw %d calls, want none before credential check", calls)
	}
}
