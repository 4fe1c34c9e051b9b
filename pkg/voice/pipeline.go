// Package voice runs the two-phase reply protocol: the generated text is
// shown at once, and the commands embedded in it are applied after a short
// delay so the terminal can display the reply first.
package voice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/umaai/pkg/command"
	"github.com/urmzd/umaai/pkg/effect"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/task"
)

// DefaultEffectDelay separates the displayed reply from its side effects.
const DefaultEffectDelay = 2 * time.Second

// fallbackReply is shown when the model returns no text.
const fallbackReply = "Не удалось получить ответ от ИИ"

// ErrUpstream wraps failures of the text generator.
var ErrUpstream = errors.New("upstream generation failed")

// Request is one generation call.
type Request struct {
	Prompt   string
	Audio    []byte
	MIMEType string
}

// Generator produces reply text from recorded audio.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Pipeline drives a voice interaction against the shared store.
type Pipeline struct {
	store  *state.Store
	engine *effect.Engine
	tasks  *task.Supervisor
	gen    Generator
	prompt PromptBuilder
	delay  time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithEffectDelay overrides the delay before embedded commands run.
func WithEffectDelay(d time.Duration) Option {
	return func(p *Pipeline) {
		p.delay = d
	}
}

// WithPrompt overrides the prompt builder.
func WithPrompt(b PromptBuilder) Option {
	return func(p *Pipeline) {
		p.prompt = b
	}
}

// NewPipeline creates a pipeline.
func NewPipeline(store *state.Store, engine *effect.Engine, tasks *task.Supervisor, gen Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:  store,
		engine: engine,
		tasks:  tasks,
		gen:    gen,
		prompt: DefaultPrompt,
		delay:  DefaultEffectDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HandleAudio runs a full interaction: the face shows thinking while the
// generator runs, then the reply is handed to Respond. On failure the face
// goes back to normal and the error wraps ErrUpstream.
func (p *Pipeline) HandleAudio(ctx context.Context, audio []byte, mimeType string) (string, error) {
	p.store.Merge(state.Patch{Emotion: state.Ptr(state.EmotionThinking)})

	text, err := p.gen.Generate(ctx, Request{
		Prompt:   p.prompt(p.store.Read()),
		Audio:    audio,
		MIMEType: mimeType,
	})
	if err != nil {
		p.store.Merge(state.Patch{Emotion: state.Ptr(state.EmotionNormal)})
		log.Error().Err(err).Str("provider", "genai").Msg("Voice generation failed")
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if text == "" {
		text = fallbackReply
	}

	p.Respond(text)
	return text, nil
}

// Respond shows text with its commands stripped and schedules the commands.
// The deferred apply is dropped if mode or aiText were written after the
// reply was shown, so a newer reply or admin change is never overwritten
// by a stale one.
func (p *Pipeline) Respond(text string) state.Snapshot {
	clean, cmds := command.Decode(text)

	snap := p.store.Merge(state.Patch{
		Mode:    state.Ptr(state.ModeText),
		AIText:  state.Ptr(clean),
		Emotion: state.Ptr(state.EmotionTalking),
	})
	if len(cmds) == 0 {
		return snap
	}

	stamp := snap.Stamp(state.FieldMode | state.FieldAIText)
	p.tasks.After("voice-effects", p.delay, func() {
		if _, ok := p.engine.RunIf(stamp, cmds); !ok {
			log.Debug().Int("commands", len(cmds)).Msg("Reply superseded, dropping its commands")
		}
	})
	return snap
}
