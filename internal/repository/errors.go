package repository

import (
	"errors"
	"strings"
)

// ErrNotFound indicates the requested record does not exist. Deleting an
// already-deleted conversation reports this and is otherwise harmless.
var ErrNotFound = errors.New("record not found")

// DescribeStoreError special-cases failures that look like a missing table,
// missing column, or permission problem into actionable guidance; other
// errors pass through with their raw message.
func DescribeStoreError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such table"):
		return "Database not set up properly: the chats table is missing. Run the schema migration. (" + msg + ")"
	case strings.Contains(msg, "no such column"):
		return "Database column mismatch: the chats table is missing the conversation_id column. Run the migration script. (" + msg + ")"
	case strings.Contains(msg, "permission denied") || strings.Contains(msg, "readonly database") || strings.Contains(msg, "access"):
		return "Database permissions not set up: check file ownership and access policies. (" + msg + ")"
	default:
		return msg
	}
}
