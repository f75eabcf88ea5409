package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// SessionResource names calculator sessions in not-found errors.
const SessionResource = "calculator session"

// SessionID identifies one live calculator instance held by a server.
type SessionID ID

func (id SessionID) String() string { return ID(id).String() }

// ParseSessionID validates a session identifier received from a client.
func ParseSessionID(s string) (SessionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", NewNotFoundError(SessionResource, s)
	}
	return SessionID(s), nil
}

// NewSessionID returns a fresh time-ordered session identifier.
func NewSessionID() SessionID {
	return SessionID(NewID())
}
