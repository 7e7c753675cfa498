package i18n

// HelperConfig configures template helper exports
type HelperConfig struct {
	// HelperKey names the translate helper, "t" when empty
	HelperKey string
	// OnMissing renders a replacement when translation fails; the raw key
	// is used when nil
	OnMissing func(locale, key string, args []any, err error) string
}

// TemplateHelpers exposes translator helpers for html/template. The helpers
// never return an error to the template engine: failed lookups go through
// OnMissing so a missing string cannot abort a page render.
func TemplateHelpers(t Translator, cfg HelperConfig) map[string]any {
	key := cfg.HelperKey
	if key == "" {
		key = "t"
	}

	missing := cfg.OnMissing
	if missing == nil {
		missing = func(locale, key string, args []any, err error) string {
			return key
		}
	}

	translate := func(locale, msgKey string, args ...any) string {
		if t == nil {
			return missing(locale, msgKey, args, ErrMissingTranslation)
		}
		result, err := t.Translate(locale, msgKey, args...)
		if err != nil {
			return missing(locale, msgKey, args, err)
		}
		return result
	}

	translateCount := func(locale, msgKey string, count int, args ...any) string {
		merged := make([]any, 0, len(args)+1)
		merged = append(merged, count)
		merged = append(merged, args...)
		return translate(locale, msgKey, merged...)
	}

	return map[string]any{
		key:          translate,
		key + "n":    translateCount,
		"i18nLocale": normalizeLocale,
	}
}
