package chat

import (
	"context"
	"fmt"

	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/ideacrafter/ideacrafter/internal/llm"
	"github.com/ideacrafter/ideacrafter/internal/logger"
	"github.com/ideacrafter/ideacrafter/internal/prompt"
	"github.com/qmuntal/stateless"
)

// Turn FSM states.
type turnState stateless.State

var (
	stateIdle          turnState = "Idle"
	stateAwaitingReply turnState = "AwaitingReply"
	stateRevealing     turnState = "Revealing"
)

// Turn FSM triggers.
type turnTrigger stateless.Trigger

var (
	triggerSubmit      turnTrigger = "Submit"
	triggerReplyReady  turnTrigger = "ReplyReady"
	triggerReplyFailed turnTrigger = "ReplyFailed"
	triggerRevealDone  turnTrigger = "RevealDone"
)

// turnContext carries one turn's data through the FSM closures.
type turnContext struct {
	epoch     int
	firstTurn bool
	history   []domain.Message
	reply     string
	title     string
	stale     bool
	err       error
	sink      RevealSink
}

// Submit runs one full turn: append the user message, fetch the completion,
// reveal it progressively, persist. Empty input and overlapping turns are
// refused before the state machine starts. A completion failure surfaces as
// a visible assistant-role message and the turn still ends in Idle; nothing
// is persisted for that turn beyond the user's own message held in memory.
func (s *Session) Submit(ctx context.Context, text string, sink RevealSink) error {
	text = trimInput(text)
	if text == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotReady
	}
	if s.busy {
		s.mu.Unlock()
		return ErrTurnInProgress
	}
	s.busy = true
	s.stopRevealLocked()

	revealCtx, cancel := context.WithCancel(ctx)
	s.cancelReveal = cancel

	s.messages = append(s.messages, domain.NewMessage(domain.RoleUser, text))
	tc := &turnContext{
		epoch:     s.epoch,
		firstTurn: s.conversationID == "",
		history:   make([]domain.Message, len(s.messages)),
		sink:      sink,
	}
	copy(tc.history, s.messages)
	opts := s.opts
	userType := s.profile.UserType
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		if s.cancelReveal != nil {
			s.cancelReveal()
			s.cancelReveal = nil
		}
		s.mu.Unlock()
	}()

	fsm := s.newTurnFSM(revealCtx, tc, opts, userType)
	if err := fsm.FireCtx(ctx, triggerSubmit); err != nil {
		return fmt.Errorf("turn state machine: %w", err)
	}

	current, err := fsm.State(ctx)
	if err != nil {
		return fmt.Errorf("turn state machine: %w", err)
	}
	if current != stateIdle {
		return fmt.Errorf("turn ended in unexpected state: %v", current)
	}
	return nil
}

// newTurnFSM wires the per-turn state machine. Transitions run synchronously
// inside the Fire calls issued from the OnEntry actions.
func (s *Session) newTurnFSM(revealCtx context.Context, tc *turnContext, opts Options, userType string) *stateless.StateMachine {
	fsm := stateless.NewStateMachine(stateIdle)

	fsm.Configure(stateIdle).
		Permit(triggerSubmit, stateAwaitingReply)

	fsm.Configure(stateAwaitingReply).
		OnEntry(func(entryCtx context.Context, _ ...any) error {
			systemPrompt := prompt.Compose(prompt.Options{
				Persona:  opts.Persona,
				Tone:     opts.Tone,
				UserType: userType,
			})
			reply, err := s.deps.Completer.GenerateReply(entryCtx, systemPrompt, tc.history, opts.Temperature)
			if err != nil {
				tc.err = err
				s.appendAssistantIfCurrent(tc.epoch, llm.UserFacingMessage(err), tc.sink)
				return fsm.FireCtx(entryCtx, triggerReplyFailed)
			}
			tc.reply = reply

			if tc.firstTurn {
				first := ""
				for _, m := range tc.history {
					if m.Role == domain.RoleUser {
						first = m.Content
						break
					}
				}
				title, terr := s.deps.Completer.GenerateTitle(entryCtx, prompt.TitlePrompt(first, reply))
				if terr != nil {
					logger.L.Warn("title generation failed, using fallback", "error", terr)
					title = prompt.FallbackTitle(tc.history)
				}
				tc.title = title
			}
			return fsm.FireCtx(entryCtx, triggerReplyReady)
		}).
		Permit(triggerReplyReady, stateRevealing).
		Permit(triggerReplyFailed, stateIdle)

	fsm.Configure(stateRevealing).
		OnEntry(func(entryCtx context.Context, _ ...any) error {
			// A completion that resolves after the session switched to a
			// different conversation is dropped, never applied or persisted.
			s.mu.Lock()
			if s.epoch != tc.epoch {
				s.mu.Unlock()
				tc.stale = true
				return fsm.FireCtx(entryCtx, triggerRevealDone)
			}
			placeholder := domain.NewMessage(domain.RoleAssistant, "")
			s.messages = append(s.messages, placeholder)
			if tc.title != "" {
				s.title = tc.title
			}
			s.mu.Unlock()

			if completed := s.reveal(revealCtx, placeholder.ID, tc.reply, tc.sink); completed {
				s.setMessageContent(placeholder.ID, tc.reply)
				s.mu.Lock()
				if s.epoch == tc.epoch {
					if err := s.persistLocked(entryCtx); err != nil {
						// Surfaced in the log with guidance; the turn itself
						// is already complete for the user.
						tc.err = err
					}
				}
				s.mu.Unlock()
			}
			return fsm.FireCtx(entryCtx, triggerRevealDone)
		}).
		Permit(triggerRevealDone, stateIdle)

	return fsm
}

// appendAssistantIfCurrent appends an assistant-role message unless the
// session has moved on to another conversation since the turn started.
func (s *Session) appendAssistantIfCurrent(epoch int, content string, sink RevealSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	msg := domain.NewMessage(domain.RoleAssistant, content)
	s.messages = append(s.messages, msg)
	if sink != nil {
		sink(msg.ID, content, true)
	}
}
