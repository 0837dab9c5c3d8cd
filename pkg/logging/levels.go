package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// Categories used by the service.
const (
	CategoryStartup = "startup"
	CategoryServer  = "server"
	CategoryHTTP    = "http"
	CategoryOpenAPI = "openapi"
)

// Levels resolves the minimum level for a logger category. Categories are
// dotted names; an override for "http" also applies to "http.access".
type Levels struct {
	Default   zerolog.Level
	overrides map[string]zerolog.Level
}

// NewLevels returns Levels with the given default and overrides.
// Override keys are matched case-insensitively.
func NewLevels(def zerolog.Level, overrides map[string]zerolog.Level) Levels {
	normalized := make(map[string]zerolog.Level, len(overrides))
	for k, v := range overrides {
		normalized[strings.ToLower(k)] = v
	}
	return Levels{Default: def, overrides: normalized}
}

// For returns the level of the longest override matching category.
func (l Levels) For(category string) zerolog.Level {
	category = strings.ToLower(category)

	best, bestLen := l.Default, -1
	for prefix, level := range l.overrides {
		if category != prefix && !strings.HasPrefix(category, prefix+".") {
			continue
		}
		if len(prefix) > bestLen {
			best, bestLen = level, len(prefix)
		}
	}
	return best
}

// Min returns the lowest configured level.
func (l Levels) Min() zerolog.Level {
	lowest := l.Default
	for _, level := range l.overrides {
		if level < lowest {
			lowest = level
		}
	}
	return lowest
}

// Category returns a child of logger tagged with the category name and
// filtered at the category's minimum level.
func Category(logger zerolog.Logger, levels Levels, name string) zerolog.Logger {
	return logger.With().
		Str("category", name).
		Logger().
		Level(levels.For(name))
}
