package i18n

import (
	"fmt"
	"strings"
)

// Formatter renders a resolved message template with the caller's arguments.
type Formatter interface {
	Format(template string, args ...any) (string, error)
}

// FormatterFunc adapters allow bare functions to implement Formatter
type FormatterFunc func(template string, args ...any) (string, error)

func (fn FormatterFunc) Format(template string, args ...any) (string, error) {
	return fn(template, args...)
}

// sprintfFormatter is the default rendering strategy. A single map argument
// substitutes {name} placeholders, anything else goes through fmt.Sprintf.
func sprintfFormatter(template string, args ...any) (string, error) {
	if len(args) == 0 {
		return template, nil
	}

	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			return substitutePlaceholders(template, data), nil
		}
	}

	if !strings.ContainsRune(template, '%') {
		return template, nil
	}

	return fmt.Sprintf(template, args...), nil
}

func substitutePlaceholders(template string, data map[string]any) string {
	if len(data) == 0 {
		return template
	}

	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.Trim(match, "{}")
		value, ok := data[name]
		if !ok {
			return match
		}
		return fmt.Sprint(value)
	})
}
