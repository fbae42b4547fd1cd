package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMessages(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	msgs := []Message{
		{ID: "m1", Role: RoleUser, Content: "How do I find a cofounder?", Timestamp: ts},
		{ID: "m2", Role: RoleAssistant, Content: "Start with your network.", Timestamp: ts.Add(time.Second)},
	}

	blob, err := EncodeMessages(msgs)
	require.NoError(t, err)

	got, err := DecodeMessages(blob)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, msgs, got, "order and fields survive the round trip")
}

func TestEncodeMessages_NilBecomesEmptyArray(t *testing.T) {
	blob, err := EncodeMessages(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", blob)
}

func TestDecodeMessages_EmptyBlob(t *testing.T) {
	got, err := DecodeMessages("")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecodeMessages_Corrupt(t *testing.T) {
	_, err := DecodeMessages("{not json")
	assert.Error(t, err)
}

func TestNewMessage(t *testing.T) {
	m := NewMessage(RoleUser, "hello")
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, RoleUser, m.Role)
	assert.Equal(t, "hello", m.Content)
	assert.Equal(t, time.UTC, m.Timestamp.Location())

	other := NewMessage(RoleUser, "hello")
	assert.NotEqual(t, m.ID, other.ID)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAssistant))
	assert.False(t, ValidRole("system"))
	assert.False(t, ValidRole(""))
}

func TestConversationUserMessageHelpers(t *testing.T) {
	c := &Conversation{Messages: []Message{
		{ID: "w", Role: RoleAssistant, Content: "Welcome!"},
	}}
	assert.False(t, c.HasUserMessage())
	_, ok := c.FirstUserMessage()
	assert.False(t, ok)

	c.Messages = append(c.Messages,
		Message{ID: "u1", Role: RoleUser, Content: "first"},
		Message{ID: "u2", Role: RoleUser, Content: "second"},
	)
	assert.True(t, c.HasUserMessage())
	first, ok := c.FirstUserMessage()
	require.True(t, ok)
	assert.Equal(t, "first", first.Content)
}

func TestValidUserType(t *testing.T) {
	assert.True(t, ValidUserType(UserTypeEntrepreneur))
	assert.True(t, ValidUserType(UserTypeInvestor))
	assert.False(t, ValidUserType("admin"))
}
