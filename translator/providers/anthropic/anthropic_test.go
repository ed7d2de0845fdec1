package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibelingo/vibelingo/translator/providers/anthropic"
)

func TestDefaultConfig(t *testing.T) {
	config := anthropic.DefaultConfig("test-api-key")

	if config.APIKey != "test-api-key" {
		t.Errorf("expected API key 'test-api-key', got %q", config.APIKey)
	}

	if config.Model == "" {
		t.Error("expected default model to be set")
	}

	if config.TPM <= 0 {
		t.Error("expected TPM > 0")
	}

	if config.RPM <= 0 {
		t.Error("expected RPM > 0")
	}
}

func TestNewProvider(t *testing.T) {
	provider := anthropic.NewProvider(anthropic.DefaultConfig("test-api-key"))

	if provider == nil {
		t.Fatal("expected provider to be created")
	}

	if provider.Name() != "anthropic" {
		t.Errorf("expected provider name 'anthropic', got %q", provider.Name())
	}
}

// Stream delivery against a stub messages endpoint: only text deltas
// surface as fragments, in order, and the stream ends with io.EOF.
func TestGenerateStreamsTextDeltas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")

		writeEvent := func(name string, payload map[string]any) {
			data, _ := json.Marshal(payload)
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
		}

		writeEvent("message_start", map[string]any{
			"type": "message_start",
			"message": map[string]any{
				"id": "msg_1", "type": "message", "role": "assistant",
				"content": []any{}, "model": "claude-sonnet-4-20250514",
				"usage": map[string]int{"input_tokens": 1, "output_tokens": 1},
			},
		})
		writeEvent("content_block_start", map[string]any{
			"type": "content_block_start", "index": 0,
			"content_block": map[string]any{"type": "text", "text": ""},
		})
		for _, text := range []string{`{"translated`, `Text": "hi"}`} {
			writeEvent("content_block_delta", map[string]any{
				"type": "content_block_delta", "index": 0,
				"delta": map[string]any{"type": "text_delta", "text": text},
			})
		}
		writeEvent("content_block_stop", map[string]any{"type": "content_block_stop", "index": 0})
		writeEvent("message_stop", map[string]any{"type": "message_stop"})
	}))
	defer server.Close()

	config := anthropic.DefaultConfig("test-api-key")
	config.BaseURL = server.URL
	provider := anthropic.NewProvider(config)

	stream, err := provider.Generate(context.Background(), "translate this")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	defer stream.Close()

	var got []string
	for {
		fragment, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("next failed: %v", err)
		}
		got = append(got, fragment)
	}

	want := []string{`{"translated`, `Text": "hi"}`}
	if len(got) != len(want) {
		t.Fatalf("expected %d fragments, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fragment %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNewProviderNilConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when creating provider with nil config")
		}
	}()
	anthropic.NewProvider(nil)
}
