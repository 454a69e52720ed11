package aiengine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/warf-hq/warf-backend/pkg/config"
)

func newTestClient(url string) *Client {
	return NewClient(&config.AIEngineConfig{
		BaseURL: url,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	})
}

func chatReply(content string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestGenerateMinutes_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[1].Content != "the transcript" {
			t.Fatalf("unexpected messages %+v", req.Messages)
		}

		w.Write([]byte(chatReply(`{"summary": "We planned the release.", "decisions": ["Ship Friday"], "action_items": [{"title": "Tag the build", "assignee": "alice"}]}`)))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).GenerateMinutes(context.Background(), "the transcript")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "We planned the release." {
		t.Fatalf("summary = %q", result.Summary)
	}
	if result.ModelName != "gpt-4o-mini" || result.PipelineVersion != "v2" {
		t.Fatalf("result = %+v", result)
	}
	if !strings.Contains(result.DecisionsJSON, "Tag the build") {
		t.Fatalf("decisions payload = %q", result.DecisionsJSON)
	}
}

func TestGenerateMinutes_StripsCodeFence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply("```json\n{\"summary\": \"Fenced.\"}\n```")))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).GenerateMinutes(context.Background(), "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "Fenced." {
		t.Fatalf("summary = %q", result.Summary)
	}
}

func TestGenerateMinutes_RetriesTransientFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(chatReply(`{"summary": "Second try."}`)))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).GenerateMinutes(context.Background(), "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want a retry after the 503", calls)
	}
	if result.Summary != "Second try." {
		t.Fatalf("summary = %q", result.Summary)
	}
}

func TestGenerateMinutes_ClientErrorNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).GenerateMinutes(context.Background(), "t"); err == nil {
		t.Fatal("expected an error for a 401")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, a 4xx must not be retried", calls)
	}
}

func TestGenerateMinutes_MissingSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(`{"decisions": ["no summary here"]}`)))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).GenerateMinutes(context.Background(), "t"); err == nil {
		t.Fatal("expected an error when the model omits the summary")
	}
}
