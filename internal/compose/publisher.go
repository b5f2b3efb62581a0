package compose

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"crosspost/internal/api"
	"crosspost/internal/notify"
	"crosspost/internal/store"
)

var (
	ErrEmptyDraft        = errors.New("write or generate content first")
	ErrNoTargets         = errors.New("select at least one connected platform")
	ErrPublishInProgress = errors.New("a publish is already in progress")
)

// Selection is which platforms the user wants to publish to. Selected
// platforms still need a live connection to become targets.
type Selection struct {
	LinkedIn bool
	Twitter  bool
}

// DefaultSelection matches the composer's initial state: LinkedIn on,
// Twitter off.
func DefaultSelection() Selection {
	return Selection{LinkedIn: true}
}

func (s Selection) On(p api.Platform) bool {
	switch p {
	case api.PlatformLinkedIn:
		return s.LinkedIn
	case api.PlatformTwitter:
		return s.Twitter
	default:
		return false
	}
}

// ConnectionState is the cached connection snapshot for one platform.
type ConnectionState struct {
	Connected  bool
	ScreenName string
}

// Connections maps each platform to its cached state.
type Connections map[api.Platform]ConnectionState

// ResolveTargets returns the platforms that are both selected and
// connected, in stable publish order.
func ResolveTargets(sel Selection, conns Connections) []api.Platform {
	var targets []api.Platform
	for _, p := range api.Platforms {
		if sel.On(p) && conns[p].Connected {
			targets = append(targets, p)
		}
	}
	return targets
}

// Outcome is one platform's publish result.
type Outcome struct {
	Platform api.Platform
	OK       bool
	Message  string
}

// Result is the aggregate of all attempted platforms.
type Result struct {
	Outcomes []Outcome
	Message  string
	Severity notify.Severity
	AllOK    bool
}

// Aggregate folds per-platform outcomes into one combined status
// message. Severity is error if any platform failed, success otherwise.
func Aggregate(outcomes []Outcome) (string, notify.Severity) {
	parts := make([]string, 0, len(outcomes))
	severity := notify.SeveritySuccess
	for _, o := range outcomes {
		mark := "✅"
		if !o.OK {
			mark = "❌"
			severity = notify.SeverityError
		}
		parts = append(parts, fmt.Sprintf("%s %s: %s", mark, o.Platform.DisplayName(), o.Message))
	}
	return strings.Join(parts, " | "), severity
}

// Poster posts to one platform. *api.Client satisfies it.
type Poster interface {
	Publish(ctx context.Context, p api.Platform, text, imageName string, image []byte) (string, error)
}

// HistoryRecorder records each attempt. *store.HistoryStore satisfies
// it; nil disables recording.
type HistoryRecorder interface {
	Append(platform string, ok bool, message string, chars int, hadImage bool) (*store.HistoryEntry, error)
}

// Publisher fans a draft out to every eligible target, sequentially and
// in stable order, and aggregates the per-platform outcomes. One
// platform's failure never skips the rest; nothing is retried.
type Publisher struct {
	poster  Poster
	history HistoryRecorder
	logger  *slog.Logger

	mu      sync.Mutex
	posting bool
}

func NewPublisher(poster Poster, history HistoryRecorder, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{poster: poster, history: history, logger: logger}
}

// Publish validates, resolves targets, posts to each in turn, and
// returns the aggregate. On full success the attachment is cleared and
// the draft text is left intact for reuse.
func (p *Publisher) Publish(ctx context.Context, draft Draft, attachments *AttachmentManager, sel Selection, conns Connections) (Result, error) {
	if draft.Empty() {
		return Result{}, ErrEmptyDraft
	}

	targets := ResolveTargets(sel, conns)
	if len(targets) == 0 {
		return Result{}, ErrNoTargets
	}

	p.mu.Lock()
	if p.posting {
		p.mu.Unlock()
		return Result{}, ErrPublishInProgress
	}
	p.posting = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.posting = false
		p.mu.Unlock()
	}()

	att := attachments.Current()

	outcomes := make([]Outcome, 0, len(targets))
	for _, target := range targets {
		msg, err := p.poster.Publish(ctx, target, draft.Text, att.Name, att.Data)
		outcome := Outcome{Platform: target, OK: err == nil, Message: msg}
		if err != nil {
			outcome.Message = err.Error()
		}
		outcomes = append(outcomes, outcome)
		p.record(outcome, draft, att)
	}

	message, severity := Aggregate(outcomes)
	result := Result{
		Outcomes: outcomes,
		Message:  message,
		Severity: severity,
		AllOK:    severity == notify.SeveritySuccess,
	}

	if result.AllOK {
		attachments.Remove()
	}
	return result, nil
}

func (p *Publisher) record(o Outcome, draft Draft, att Attachment) {
	if p.history == nil {
		return
	}
	if _, err := p.history.Append(string(o.Platform), o.OK, o.Message, draft.CharCount(), !att.Empty()); err != nil {
		p.logger.Warn("record publish history", "platform", o.Platform, "error", err)
	}
}
