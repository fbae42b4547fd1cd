// Package chat owns the in-memory conversation state of one advisor session
// and drives each turn through a small state machine: Idle -> AwaitingReply
// -> Revealing -> Idle. The session level runs Uninitialized -> Ready, gated
// on the profile load.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/ideacrafter/ideacrafter/internal/events"
	"github.com/ideacrafter/ideacrafter/internal/handoff"
	"github.com/ideacrafter/ideacrafter/internal/logger"
	"github.com/ideacrafter/ideacrafter/internal/prompt"
	"github.com/ideacrafter/ideacrafter/internal/repository"
)

var (
	// ErrNotReady is returned when a turn is submitted before Start.
	ErrNotReady = errors.New("session not ready")

	// ErrEmptyMessage is returned for blank input; the turn never starts.
	ErrEmptyMessage = errors.New("empty message")

	// ErrTurnInProgress is returned when a turn is submitted while another
	// one is active. Refusing the overlap is the session's only concurrency
	// control, mirroring the disabled input field.
	ErrTurnInProgress = errors.New("turn already in progress")
)

// Completer is the completion boundary of a turn.
type Completer interface {
	GenerateReply(ctx context.Context, systemPrompt string, history []domain.Message, temperature float32) (string, error)
	GenerateTitle(ctx context.Context, titlePrompt string) (string, error)
}

// RevealSink observes the progressive reveal of an assistant reply.
// content always holds the full prefix revealed so far.
type RevealSink func(messageID, content string, done bool)

// Options selects the response style and sampling temperature for turns.
type Options struct {
	Persona     string
	Tone        string
	Temperature float32
}

// Deps are the collaborators injected into a session at construction.
type Deps struct {
	Completer     Completer
	Conversations repository.ConversationRepo
	Profiles      repository.ProfileRepo
	Handoff       *handoff.Store
	Events        events.Publisher
}

// Session is one user's chat session. Methods are safe for concurrent use,
// but Submit is deliberately non-reentrant: a second submission while a turn
// is active is refused, not queued.
type Session struct {
	deps Deps
	opts Options

	revealTick   time.Duration
	revealBudget time.Duration

	mu             sync.Mutex
	ready          bool
	userID         string
	profile        domain.Profile
	conversationID string
	title          string
	messages       []domain.Message
	busy           bool
	epoch          int
	cancelReveal   context.CancelFunc
}

// Reveal pacing: a fixed small tick, with the per-tick chunk sized so any
// reply finishes in roughly revealBudget of wall-clock time.
const (
	defaultRevealTick   = 15 * time.Millisecond
	defaultRevealBudget = 800 * time.Millisecond
)

// NewSession creates a session in the Uninitialized state.
func NewSession(deps Deps, opts Options) *Session {
	if deps.Events == nil {
		deps.Events = events.Noop{}
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	return &Session{
		deps:         deps,
		opts:         opts,
		revealTick:   defaultRevealTick,
		revealBudget: defaultRevealBudget,
	}
}

// SetOptions changes the persona/tone/temperature used for subsequent turns.
func (s *Session) SetOptions(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if opts.Temperature == 0 {
		opts.Temperature = s.opts.Temperature
	}
	s.opts = opts
}

// Start loads the profile and moves the session to Ready, seeding the
// welcome message. A parked handoff snapshot, when present, is consumed
// instead and restores the carried conversation.
func (s *Session) Start(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("user id required")
	}
	profile, err := s.deps.Profiles.Get(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.profile = *profile

	if s.deps.Handoff != nil {
		if snap, ok, err := s.deps.Handoff.Take(userID); err != nil {
			logger.L.Warn("handoff read failed", "user_id", userID, "error", err)
		} else if ok && len(snap.Messages) > 0 {
			s.conversationID = snap.ConversationID
			s.messages = snap.Messages
			s.ready = true
			return nil
		}
	}

	s.messages = []domain.Message{
		domain.NewMessage(domain.RoleAssistant, prompt.WelcomeMessage(profile.UserType, profile.FullName)),
	}
	s.ready = true
	return nil
}

// ConversationID returns the current conversation id, empty until the first
// successful save.
func (s *Session) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

// Messages returns a copy of the in-memory message list.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Profile returns the loaded profile.
func (s *Session) Profile() domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// NewChat persists the current conversation if it has at least one user
// turn, then resets to a fresh welcome-only conversation. A welcome-only
// conversation is dropped silently.
func (s *Session) NewChat(ctx context.Context) error {
	s.mu.Lock()
	s.stopRevealLocked()
	var saveErr error
	if s.hasUserMessageLocked() {
		saveErr = s.persistLocked(ctx)
	}
	s.conversationID = ""
	s.title = ""
	s.epoch++
	s.messages = []domain.Message{
		domain.NewMessage(domain.RoleAssistant, prompt.WelcomeMessage(s.profile.UserType, s.profile.FullName)),
	}
	s.mu.Unlock()
	return saveErr
}

// LoadConversation replaces the session state with a stored conversation.
// Any in-flight reveal is torn down first, and the epoch bump guarantees a
// late completion from the previous conversation is dropped.
func (s *Session) LoadConversation(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	userID := s.userID
	s.mu.Unlock()

	c, err := s.deps.Conversations.Load(ctx, userID, conversationID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopRevealLocked()
	s.conversationID = c.ConversationID
	s.title = c.Title
	s.messages = c.Messages
	s.epoch++
	return nil
}

// DeleteMessage removes a message from the in-memory list and immediately
// re-persists the remainder. There is no undo.
func (s *Session) DeleteMessage(ctx context.Context, messageID string) error {
	s.mu.Lock()
	kept := s.messages[:0:0]
	for _, m := range s.messages {
		if m.ID != messageID {
			kept = append(kept, m)
		}
	}
	s.messages = kept
	var err error
	if s.conversationID != "" {
		err = s.persistLocked(ctx)
	}
	s.mu.Unlock()
	return err
}

// Close tears down any active reveal.
func (s *Session) Close() {
	s.mu.Lock()
	s.stopRevealLocked()
	s.mu.Unlock()
}

func (s *Session) hasUserMessageLocked() bool {
	for _, m := range s.messages {
		if m.Role == domain.RoleUser {
			return true
		}
	}
	return false
}

func (s *Session) stopRevealLocked() {
	if s.cancelReveal != nil {
		s.cancelReveal()
		s.cancelReveal = nil
	}
}

// setMessageContent mutates the reveal placeholder during the animation.
func (s *Session) setMessageContent(messageID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == messageID {
			s.messages[i].Content = content
			return
		}
	}
}

// persistLocked writes the whole message list as one record. The store
// assigns the conversation id on first save and the session adopts it.
// Welcome-only conversations are skipped. Caller holds s.mu.
func (s *Session) persistLocked(ctx context.Context) error {
	if !s.hasUserMessageLocked() {
		return nil
	}
	msgs := make([]domain.Message, len(s.messages))
	copy(msgs, s.messages)

	title := s.title
	c := &domain.Conversation{
		ConversationID: s.conversationID,
		UserID:         s.userID,
		Title:          title,
		Messages:       msgs,
	}
	if c.Title == "" {
		c.Title = prompt.FallbackTitle(msgs)
	}
	if err := s.deps.Conversations.Save(ctx, c); err != nil {
		logger.L.Error("saving conversation failed", "user_id", s.userID, "detail", repository.DescribeStoreError(err))
		return err
	}
	s.conversationID = c.ConversationID
	s.title = c.Title
	s.deps.Events.ConversationSaved(ctx, s.userID, c.ConversationID)
	return nil
}

// reveal types text progressively through the sink. Returns false when the
// reveal was canceled before completing.
func (s *Session) reveal(ctx context.Context, messageID, text string, sink RevealSink) bool {
	runes := []rune(text)
	ticks := int(s.revealBudget / s.revealTick)
	if ticks < 1 {
		ticks = 1
	}
	chunk := (len(runes) + ticks - 1) / ticks
	if chunk < 1 {
		chunk = 1
	}

	ticker := time.NewTicker(s.revealTick)
	defer ticker.Stop()

	for pos := 0; pos < len(runes); {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			pos += chunk
			if pos > len(runes) {
				pos = len(runes)
			}
			shown := string(runes[:pos])
			s.setMessageContent(messageID, shown)
			if sink != nil {
				sink(messageID, shown, pos == len(runes))
			}
		}
	}
	return true
}

func trimInput(text string) string {
	return strings.TrimSpace(text)
}
