package config

import (
	"runtime"
	"strings"
)

// LineEnd is the line terminator written between output lines
type LineEnd string

const (
	Windows LineEnd = "\r\n"
	Linux   LineEnd = "\n"
	Mac     LineEnd = "\r"
)

// Platform returns the line terminator of the running OS
func Platform() LineEnd {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Linux
}

// ParseLineEnd maps "windows", "linux", "mac" (any case) to a terminator.
// Anything else, including "platform", selects the platform default.
func ParseLineEnd(value string) LineEnd {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "windows", "crlf":
		return Windows
	case "linux", "lf":
		return Linux
	case "mac", "cr":
		return Mac
	}
	return Platform()
}

// LineEnd returns the configured terminator
func (c *Config) LineEnd() LineEnd {
	return ParseLineEnd(c.LineEnding)
}
