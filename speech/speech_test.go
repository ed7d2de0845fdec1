package speech_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vibelingo/vibelingo/speech"
)

// Mock synthesizer for testing
type mockSynthesizer struct {
	audio *speech.Audio
	err   error
}

func (m *mockSynthesizer) Name() string {
	return "mock"
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, req speech.Request) (*speech.Audio, error) {
	return m.audio, m.err
}

func TestAnnouncerPlays(t *testing.T) {
	syn := &mockSynthesizer{audio: &speech.Audio{PCM: []byte{1, 0, 2, 0}, SampleRate: 24000, Channels: 1}}
	announcer := speech.NewAnnouncer(syn, nil)

	var played *speech.Audio
	outcome := announcer.Speak(context.Background(), "kamusta", func(a *speech.Audio) {
		played = a
	})

	if !outcome.Played {
		t.Error("expected Played outcome")
	}
	if played == nil || played.Samples() != 2 {
		t.Errorf("expected 2 samples delivered to play, got %+v", played)
	}
}

// A synthesis failure must never propagate: the outcome is still usable and
// the only trace is a log entry.
func TestAnnouncerSwallowsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	syn := &mockSynthesizer{err: errors.New("endpoint down")}
	announcer := speech.NewAnnouncer(syn, zap.New(core))

	outcome := announcer.Speak(context.Background(), "kamusta", func(a *speech.Audio) {
		t.Error("play must not run on failure")
	})

	if outcome.Played {
		t.Error("expected not-played outcome")
	}
	if logs.FilterMessage("speech synthesis failed").Len() != 1 {
		t.Error("expected the failure to be logged")
	}
}

func TestAnnouncerSilentOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	syn := &mockSynthesizer{} // nil audio, nil error
	announcer := speech.NewAnnouncer(syn, zap.New(core))

	outcome := announcer.Speak(context.Background(), "kamusta", func(a *speech.Audio) {
		t.Error("play must not run without audio")
	})

	if outcome.Played {
		t.Error("expected not-played outcome for silent synthesis")
	}
	if logs.FilterMessage("speech synthesis failed").Len() != 0 {
		t.Error("a silent outcome is not a failure")
	}
}

func TestAnnouncerNilPlay(t *testing.T) {
	syn := &mockSynthesizer{audio: &speech.Audio{PCM: []byte{1, 0}}}
	announcer := speech.NewAnnouncer(syn, nil)

	outcome := announcer.Speak(context.Background(), "kamusta", nil)
	if !outcome.Played {
		t.Error("nil play should not affect the outcome")
	}
}
