package facematch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/warf-hq/warf-backend/pkg/config"
)

func newTestClient(url string) *Client {
	return NewClient(&config.FaceMatchConfig{
		BaseURL: url,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
}

func TestVerify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/verify" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}

		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		ref, err := base64.StdEncoding.DecodeString(req.ReferenceImage)
		if err != nil || string(ref) != "reference-bytes" {
			t.Fatalf("reference image not base64 round-tripped: %v", err)
		}

		json.NewEncoder(w).Encode(verifyResponse{Verified: true, Confidence: 0.93})
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Verify(context.Background(), []byte("reference-bytes"), []byte("probe-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Matched {
		t.Fatal("expected a match")
	}
	if result.Confidence != 0.93 {
		t.Fatalf("confidence = %v, want 0.93", result.Confidence)
	}
}

func TestVerify_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(verifyResponse{Verified: false, Confidence: 0.12})
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Verify(context.Background(), []byte("a"), []byte("b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Matched {
		t.Fatal("expected no match")
	}
}

func TestVerify_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(verifyResponse{Error: "no face detected"})
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Verify(context.Background(), []byte("a"), []byte("b")); err == nil {
		t.Fatal("expected an error from the error field")
	}
}

func TestVerify_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Verify(context.Background(), []byte("a"), []byte("b")); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}
