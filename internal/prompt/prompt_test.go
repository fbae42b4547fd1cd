package prompt

import (
	"strings"
	"testing"

	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_UnknownPersonaFallsBackToStrategist(t *testing.T) {
	reference := Compose(Options{Persona: "Strategist", Tone: "Balanced", UserType: domain.UserTypeEntrepreneur})
	for _, persona := range []string{"Wizard", "", "strategist", "CRITIC"} {
		got := Compose(Options{Persona: persona, Tone: "Balanced", UserType: domain.UserTypeEntrepreneur})
		assert.Equal(t, reference, got, "persona %q should compose like Strategist", persona)
	}
}

func TestCompose_UnknownToneFallsBackToBalanced(t *testing.T) {
	reference := Compose(Options{Persona: "Critic", Tone: "Balanced", UserType: domain.UserTypeInvestor})
	for _, tone := range []string{"Aggressive", "", "balanced"} {
		got := Compose(Options{Persona: "Critic", Tone: tone, UserType: domain.UserTypeInvestor})
		assert.Equal(t, reference, got, "tone %q should compose like Balanced", tone)
	}
}

func TestCompose_ContainsAllSections(t *testing.T) {
	got := Compose(Options{Persona: "Founder", Tone: "Concise", UserType: domain.UserTypeInvestor})
	assert.Contains(t, got, "experienced founder")
	assert.Contains(t, got, "brief, direct answers")
	assert.Contains(t, got, "Tailor your advice to the user type:")
	assert.Contains(t, got, "User type: investor")
	assert.Contains(t, got, "Current persona: Founder")
	assert.Contains(t, got, "Communication tone: Concise")
}

func TestTitlePrompt_EmptyFirstMessage(t *testing.T) {
	got := TitlePrompt("", "Some reply")
	assert.Contains(t, got, "User: No user message")
	assert.Contains(t, got, "AI: Some reply")
}

func TestWelcomeMessage_FirstName(t *testing.T) {
	got := WelcomeMessage(domain.UserTypeEntrepreneur, "Ada Lovelace")
	assert.True(t, strings.HasPrefix(got, "Hi Ada!"), "got %q", got)

	got = WelcomeMessage(domain.UserTypeInvestor, "")
	assert.True(t, strings.HasPrefix(got, "Hello there!"), "got %q", got)
}

func TestFallbackTitle(t *testing.T) {
	long := strings.Repeat("a", 60)
	msgs := []domain.Message{
		{Role: domain.RoleAssistant, Content: "welcome"},
		{Role: domain.RoleUser, Content: long},
	}
	got := FallbackTitle(msgs)
	require.Len(t, []rune(got), 53)
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Equal(t, "short question", FallbackTitle([]domain.Message{{Role: domain.RoleUser, Content: "short question"}}))
	assert.Equal(t, "Untitled Chat", FallbackTitle(nil))
}
