package domain

import (
	"fmt"
	"strings"
)

// StatusStyle selects how the completion flag is rendered.
type StatusStyle int

const (
	// StatusStyleConsole renders Complete / Incomplete.
	StatusStyleConsole StatusStyle = iota
	// StatusStyleAPI renders Y / N.
	StatusStyleAPI
)

func (s StatusStyle) Status(completed bool) string {
	switch s {
	case StatusStyleConsole:
		if completed {
			return "Complete"
		}
		return "Incomplete"
	default:
		if completed {
			return "Y"
		}
		return "N"
	}
}

func (s StatusStyle) String() string {
	if s == StatusStyleConsole {
		return "console"
	}
	return "api"
}

// ParseStatusStyle accepts "console" or "api", ignoring case.
func ParseStatusStyle(s string) (StatusStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "console":
		return StatusStyleConsole, nil
	case "api":
		return StatusStyleAPI, nil
	default:
		return StatusStyleConsole, fmt.Errorf("unknown status style %q", s)
	}
}
