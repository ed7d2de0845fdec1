// Package speech provides one-shot text-to-speech synthesis as an external
// collaborator of the translation flow. Synthesis is fire-and-forget: a
// failed or empty synthesis never breaks the surrounding translation flow.
package speech

import (
	"context"

	"go.uber.org/zap"
)

// DefaultVoice is the built-in voice identifier used when the caller does not
// pick one.
const DefaultVoice = "Kore"

// Request is the input of one synthesis call.
type Request struct {
	Text  string
	Voice string // defaults to DefaultVoice when empty
}

// Audio is decoded speech audio: little-endian 16-bit PCM, mono, 24 kHz.
type Audio struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

// Samples returns the number of 16-bit samples in the audio.
func (a *Audio) Samples() int {
	return len(a.PCM) / 2
}

// Synthesizer performs a single text-to-speech call. A nil Audio with a nil
// error is a valid, silent outcome: the endpoint responded without an audio
// payload.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Audio, error)

	// Name returns the provider name.
	Name() string
}

// Outcome is what a fire-and-forget synthesis reports to the caller. It
// never carries an error; failure detail is only available via the log.
type Outcome struct {
	// Played is true when an audio payload was produced.
	Played bool
}

// Announcer wraps a Synthesizer with the never-fails contract: Speak always
// returns a usable Outcome and confines failures to the log.
type Announcer struct {
	syn    Synthesizer
	logger *zap.Logger
}

// NewAnnouncer creates an announcer. A nil logger is replaced with a nop
// logger.
func NewAnnouncer(syn Synthesizer, logger *zap.Logger) *Announcer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Announcer{syn: syn, logger: logger}
}

// Speak synthesizes text and hands the audio to play. Synthesis errors and
// empty payloads are swallowed: they are logged and reported as an Outcome
// with Played false. play may be nil when the caller only wants the side
// effect of warming caches or logging.
func (a *Announcer) Speak(ctx context.Context, text string, play func(*Audio)) Outcome {
	audio, err := a.syn.Synthesize(ctx, Request{Text: text})
	if err != nil {
		a.logger.Warn("speech synthesis failed",
			zap.String("provider", a.syn.Name()),
			zap.Error(err))
		return Outcome{}
	}
	if audio == nil || len(audio.PCM) == 0 {
		a.logger.Debug("speech synthesis returned no audio",
			zap.String("provider", a.syn.Name()))
		return Outcome{}
	}

	if play != nil {
		play(audio)
	}
	return Outcome{Played: true}
}
