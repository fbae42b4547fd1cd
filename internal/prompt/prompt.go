// Package prompt builds the system prompt sent ahead of every completion
// request, from a fixed catalog of persona and tone descriptors plus the
// account type.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ideacrafter/ideacrafter/internal/domain"
)

// Defaults substituted silently for unrecognized values.
const (
	DefaultPersona = "Strategist"
	DefaultTone    = "Balanced"
)

var personaPrompts = map[string]string{
	"Strategist": "You are a strategic business advisor who provides comprehensive, long-term planning and market analysis.",
	"Critic":     "You are a critical analyst who provides honest feedback, identifies weaknesses, and suggests improvements.",
	"Founder":    "You are an experienced founder who shares practical insights from real startup experiences.",
	"Investor":   "You are a seasoned investor who focuses on financial viability, scalability, and return potential.",
}

var tonePrompts = map[string]string{
	"Balanced": "Respond in a balanced, professional manner with appropriate detail.",
	"Formal":   "Respond in a formal, business-appropriate manner with structured analysis.",
	"Casual":   "Respond in a conversational, friendly manner that's easy to understand.",
	"Concise":  "Respond with brief, direct answers focusing on key points only.",
}

const userTypeGuidance = `Tailor your advice to the user type:
- Entrepreneur: focus on value proposition, market traction, scaling, and funding.
- Investor: focus on due diligence, team assessment, market size, risks, and portfolio optimization.`

// Options selects the response style for a turn.
type Options struct {
	Persona  string
	Tone     string
	UserType string
}

// NormalizePersona maps unrecognized personas to the default.
func NormalizePersona(p string) string {
	if _, ok := personaPrompts[p]; !ok {
		return DefaultPersona
	}
	return p
}

// NormalizeTone maps unrecognized tones to the default.
func NormalizeTone(t string) string {
	if _, ok := tonePrompts[t]; !ok {
		return DefaultTone
	}
	return t
}

// Compose produces the system-role text block for a turn. Unrecognized
// persona or tone values fall back to the defaults; there is no failure path.
func Compose(opts Options) string {
	persona := NormalizePersona(opts.Persona)
	tone := NormalizeTone(opts.Tone)
	userType := opts.UserType
	if !domain.ValidUserType(userType) {
		userType = domain.UserTypeEntrepreneur
	}

	var b strings.Builder
	b.WriteString(personaPrompts[persona])
	b.WriteString("\n\n")
	b.WriteString(tonePrompts[tone])
	b.WriteString("\n\n")
	b.WriteString(userTypeGuidance)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "User type: %s\n", userType)
	fmt.Fprintf(&b, "Current persona: %s\n", persona)
	fmt.Fprintf(&b, "Communication tone: %s", tone)
	return b.String()
}

// TitlePrompt is the instruction block for the auto-title request issued on
// the first turn of a conversation.
func TitlePrompt(firstUserMessage, reply string) string {
	if strings.TrimSpace(firstUserMessage) == "" {
		firstUserMessage = "No user message"
	}
	return fmt.Sprintf(`Create a brief, descriptive title (3-7 words) for this conversation based on the user's first message and the AI's response.
Focus on the main topic or question. Be specific but concise.

User: %s
AI: %s

Title:`, firstUserMessage, reply)
}

// WelcomeMessage is the assistant greeting seeding a new conversation.
func WelcomeMessage(userType, fullName string) string {
	name := "there"
	if parts := strings.Fields(fullName); len(parts) > 0 {
		name = parts[0]
	}
	if userType == domain.UserTypeInvestor {
		return fmt.Sprintf("Hello %s! 👋 I'm your AI investment advisor — I can help with deal evaluation, market insights, portfolio strategy, and more. What can I do for you today?", name)
	}
	return fmt.Sprintf("Hi %s! 👋 I'm your AI business advisor, here to help with pitch prep, fundraising, market research, and growth. What would you like to work on today?", name)
}

// FallbackTitle derives a title from the first user turn when no generated
// title is available: the first 50 runes, ellipsized.
func FallbackTitle(msgs []domain.Message) string {
	for _, m := range msgs {
		if m.Role != domain.RoleUser {
			continue
		}
		runes := []rune(m.Content)
		if len(runes) > 50 {
			return string(runes[:50]) + "..."
		}
		return m.Content
	}
	return "Untitled Chat"
}
