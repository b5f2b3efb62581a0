package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Tones and Lengths are the options offered to the user. They are
// passed through to the backend as opaque strings.
var (
	Tones   = []string{"professional", "casual", "inspirational", "humorous", "educational"}
	Lengths = []string{"short", "medium", "long"}
)

var ErrEmptyTopic = errors.New("please enter a topic")

// ErrGenerationInProgress guards against overlapping generation calls;
// the trigger is disabled while one is in flight.
var ErrGenerationInProgress = errors.New("generation already in progress")

// TextSource produces AI post text. *api.Client satisfies it.
type TextSource interface {
	GenerateText(ctx context.Context, topic, tone, length string) (string, error)
}

// Generator turns a topic/tone/length tuple into a draft. Regenerating
// with the same topic is the same operation; there is no diffing
// against the previous draft.
type Generator struct {
	source TextSource

	mu   sync.Mutex
	busy bool
}

func NewGenerator(source TextSource) *Generator {
	return &Generator{source: source}
}

// Generate validates the topic, calls the backend, and returns the new
// draft. An empty or whitespace topic fails before any network call.
func (g *Generator) Generate(ctx context.Context, topic, tone, length string) (Draft, error) {
	if strings.TrimSpace(topic) == "" {
		return Draft{}, ErrEmptyTopic
	}

	g.mu.Lock()
	if g.busy {
		g.mu.Unlock()
		return Draft{}, ErrGenerationInProgress
	}
	g.busy = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.busy = false
		g.mu.Unlock()
	}()

	text, err := g.source.GenerateText(ctx, topic, tone, length)
	if err != nil {
		return Draft{}, fmt.Errorf("generate content: %w", err)
	}
	return Draft{Text: text}, nil
}
