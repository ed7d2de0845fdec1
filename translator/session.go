package translator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vibelingo/vibelingo/translator/connectivity"
)

// State is the lifecycle phase of a Session.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateStreaming  State = "streaming"
	StateFinalizing State = "finalizing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// ProgressFunc receives the best-effort translatedText prefix each time the
// partial extractor yields a new value. It may be called zero or many times;
// each value is a prefix of the next and of the final field.
type ProgressFunc func(partial string)

// Session runs a single streaming translation request against a Generator.
// A Session is single-use: create one per request and discard it when Run
// returns. The caller is responsible for never having two sessions from the
// same context in flight at once; Session provides no internal mutual
// exclusion and no internal timeouts (bound latency with the context).
type Session struct {
	gen    Generator
	conn   connectivity.Checker
	logger *zap.Logger

	state State

	// Accumulator. The buffer only grows until session end and is never
	// reused across requests.
	buffer      strings.Builder
	lastPartial string
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithConnectivity injects the connectivity checker consulted before the
// endpoint is contacted and again whenever the transport fails mid-call.
// Defaults to connectivity.Always.
func WithConnectivity(c connectivity.Checker) SessionOption {
	return func(s *Session) {
		if c != nil {
			s.conn = c
		}
	}
}

// WithLogger injects a logger for state-transition diagnostics. Defaults to
// a nop logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session bound to a generation provider.
func NewSession(gen Generator, opts ...SessionOption) *Session {
	s := &Session{
		gen:    gen,
		conn:   connectivity.Always,
		logger: zap.NewNop(),
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the session's current lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Run executes the full request lifecycle: connectivity check, streaming
// request, per-fragment partial extraction, finalization. On failure it
// returns a *SessionError carrying exactly one ErrorKind and no partial
// result. onProgress may be nil.
func (s *Session) Run(ctx context.Context, req *TranslationRequest, onProgress ProgressFunc) (*TranslationResult, error) {
	if s.state != StateIdle {
		return nil, failure(KindUnknown, fmt.Errorf("session already used (state %s)", s.state))
	}
	if req == nil || strings.TrimSpace(req.Text) == "" {
		return nil, s.fail(failure(KindUnknown, fmt.Errorf("request text is empty")))
	}

	start := time.Now()
	s.transition(StateRequesting)

	if !s.conn.Online(ctx) {
		return nil, s.fail(failure(KindOffline, fmt.Errorf("no network connectivity")))
	}

	prompt := BuildPrompt(req.Text, req.SourceLanguage, req.TargetLanguage, req.Style)

	stream, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, s.fail(s.classifyTransport(ctx, err))
	}
	defer stream.Close()

	s.transition(StateStreaming)

	for {
		fragment, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, s.fail(s.classifyTransport(ctx, err))
		}
		if fragment == "" {
			continue
		}

		s.buffer.WriteString(fragment)

		// Extraction runs over the whole accumulated buffer so the result
		// is re-derivable from the prefix alone, independent of how the
		// transport split it into fragments.
		if partial, ok := ExtractTranslatedText(s.buffer.String()); ok && partial != s.lastPartial {
			s.lastPartial = partial
			if onProgress != nil {
				onProgress(partial)
			}
		}
	}

	s.transition(StateFinalizing)

	result, err := Finalize(s.buffer.String())
	if err != nil {
		return nil, s.fail(err)
	}

	result.Provider = s.gen.Name()
	result.Duration = time.Since(start)

	s.transition(StateCompleted)
	return result, nil
}

// classifyTransport assigns an ErrorKind to a failure of the request or
// stream. Connectivity outranks every message-derived signal: connectivity
// lost after the initial check still reports OFFLINE, whatever the transport
// error says.
func (s *Session) classifyTransport(ctx context.Context, err error) *SessionError {
	if !s.conn.Online(ctx) {
		return failure(KindOffline, err)
	}
	return failure(Classify(err), err)
}

func (s *Session) transition(next State) {
	s.logger.Debug("session state change",
		zap.String("from", string(s.state)),
		zap.String("to", string(next)))
	s.state = next
}

func (s *Session) fail(err error) error {
	s.logger.Debug("session failed",
		zap.String("from", string(s.state)),
		zap.String("kind", string(KindOf(err))),
		zap.Error(err))
	s.state = StateFailed
	return err
}
