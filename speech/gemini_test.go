package speech_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/vibelingo/vibelingo/speech"
)

func newTestSynthesizer(t *testing.T, handler http.HandlerFunc) *speech.GeminiSynthesizer {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := speech.DefaultGeminiConfig("test-api-key")
	config.BaseURL = server.URL
	config.Client = server.Client()

	syn, err := speech.NewGeminiSynthesizer(config)
	if err != nil {
		t.Fatalf("failed to create synthesizer: %v", err)
	}
	return syn
}

func TestGeminiSynthesize(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0x02, 0x00}
	encoded := base64.StdEncoding.EncodeToString(pcm)

	var gotBody string
	syn := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/pcm","data":%q}}]}}]}`, encoded)
	})

	audio, err := syn.Synthesize(context.Background(), speech.Request{Text: "kamusta ka"})
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if audio == nil || audio.Samples() != 2 {
		t.Fatalf("unexpected audio %+v", audio)
	}

	if got := gjson.Get(gotBody, "contents.0.parts.0.text").String(); got != "kamusta ka" {
		t.Errorf("request should carry the text, got %q", got)
	}
	if got := gjson.Get(gotBody, "generationConfig.responseModalities.0").String(); got != "AUDIO" {
		t.Errorf("request should ask for audio, got %q", got)
	}
	if got := gjson.Get(gotBody, "generationConfig.speechConfig.voiceConfig.prebuiltVoiceConfig.voiceName").String(); got != speech.DefaultVoice {
		t.Errorf("expected default voice, got %q", got)
	}
}

func TestGeminiSynthesizeVoiceOverride(t *testing.T) {
	var gotBody string
	syn := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	if _, err := syn.Synthesize(context.Background(), speech.Request{Text: "hi", Voice: "Puck"}); err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if got := gjson.Get(gotBody, "generationConfig.speechConfig.voiceConfig.prebuiltVoiceConfig.voiceName").String(); got != "Puck" {
		t.Errorf("expected voice override, got %q", got)
	}
}

// A well-formed response without an audio payload is the valid silent
// outcome, not an error.
func TestGeminiSynthesizeSilent(t *testing.T) {
	syn := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"no audio here"}]}}]}`)
	})

	audio, err := syn.Synthesize(context.Background(), speech.Request{Text: "hi"})
	if err != nil {
		t.Fatalf("expected silent outcome, got error %v", err)
	}
	if audio != nil {
		t.Errorf("expected nil audio, got %+v", audio)
	}
}

func TestGeminiSynthesizeHTTPError(t *testing.T) {
	syn := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":429,"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := syn.Synthesize(context.Background(), speech.Request{Text: "hi"})
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status, got %v", err)
	}
}

func TestNewGeminiSynthesizerNilConfig(t *testing.T) {
	if _, err := speech.NewGeminiSynthesizer(nil); err == nil {
		t.Error("expected error when creating synthesizer with nil config")
	}
}
