package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects where a submitted thought goes.
type Mode string

const (
	ModeDaily      Mode = "daily"
	ModeStandalone Mode = "standalone"
	ModeEndpoint   Mode = "endpoint"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeDaily, ModeStandalone, ModeEndpoint:
		return true
	default:
		return false
	}
}

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid mode %q (want daily|standalone|endpoint)", s)
	}
	return m, nil
}

type AuthType string

const (
	AuthNone   AuthType = "none"
	AuthBearer AuthType = "bearer"
	AuthBasic  AuthType = "basic"
)

func (a AuthType) Valid() bool {
	switch a {
	case AuthNone, AuthBearer, AuthBasic:
		return true
	default:
		return false
	}
}

// EndpointConfig describes the HTTP destination used in endpoint mode.
type EndpointConfig struct {
	URL          string   `json:"url"`
	AuthType     AuthType `json:"authType"`
	BearerToken  string   `json:"bearerToken,omitempty"`
	Username     string   `json:"username,omitempty"`
	Password     string   `json:"password,omitempty"`
	ExtraHeaders string   `json:"extraHeaders,omitempty"`
}

// DefaultEndpointConfig has no URL and no auth.
func DefaultEndpointConfig() EndpointConfig {
	return EndpointConfig{AuthType: AuthNone}
}

// Redacted returns a copy with secrets masked, for display.
func (c EndpointConfig) Redacted() EndpointConfig {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "***"
	}
	c.BearerToken = mask(c.BearerToken)
	c.Password = mask(c.Password)
	return c
}

// StashEntry is one saved snippet. Entries are never edited after creation.
type StashEntry struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// StashTimestampLayout matches JavaScript's Date.toISOString (UTC, millisecond precision).
const StashTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func NewStashEntry(content string, now time.Time) StashEntry {
	return StashEntry{Content: content, Timestamp: now.UTC().Format(StashTimestampLayout)}
}

// Time parses Timestamp; the zero time is returned for malformed values.
func (e StashEntry) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
