package ui

import (
	"strconv"
	"strings"
)

// Level names a class of console message that can be switched on or off.
type Level string

const (
	LevelBlank Level = "BLANK"
	LevelInfo  Level = "INFO"
	LevelTrace Level = "TRACE"
	LevelDebug Level = "DEBUG"
)

// EnvVarPrefix is prepended to a level name to form the environment variable that toggles it,
// e.g. LOG_TRACE=1 enables trace messages and LOG_INFO=0 silences info messages.
const EnvVarPrefix = "LOG_"

// Levels records which message levels are enabled.
// It is built once at startup and handed to the console; nothing reads the environment afterwards.
type Levels map[Level]bool

// AllLevels returns every known level in display order.
func AllLevels() []Level {
	return []Level{LevelBlank, LevelInfo, LevelTrace, LevelDebug}
}

// DefaultLevels enables blank and info messages only.
func DefaultLevels() Levels {
	return Levels{
		LevelBlank: true,
		LevelInfo:  true,
		LevelTrace: false,
		LevelDebug: false,
	}
}

// LevelsFromEnv starts from DefaultLevels and applies any LOG_<LEVEL> overrides found through lookup.
// A value of 1 enables the level, any other integer disables it; values that are not integers are ignored.
func LevelsFromEnv(lookup func(string) (string, bool)) Levels {
	levels := DefaultLevels()
	if lookup == nil {
		return levels
	}

	for _, lvl := range AllLevels() {
		raw, ok := lookup(EnvVarPrefix + string(lvl))
		if !ok {
			continue
		}

		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}

		levels[lvl] = v == 1
	}

	return levels
}

// Enabled reports whether messages at lvl should be shown.
func (l Levels) Enabled(lvl Level) bool {
	return l[lvl]
}
