package i18n

// Translator resolves a string for a given locale and message key.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// metadataTranslator is implemented by translators that can report details
// about how a message was resolved, consumed by hook wrappers.
type metadataTranslator interface {
	TranslateWithMetadata(locale, key string, args ...any) (string, map[string]any, error)
}

// cardinalRuleSource is satisfied by stores that keep plural rules per locale.
type cardinalRuleSource interface {
	CardinalRules(locale string) *PluralRuleSet
}

// SimpleTranslator resolves keys through the store walking the locale
// fallback chain, selecting plural variants when a count is supplied.
type SimpleTranslator struct {
	store         Store
	defaultLocale string
	resolver      FallbackResolver
	formatter     Formatter
}

var _ Translator = &SimpleTranslator{}
var _ metadataTranslator = &SimpleTranslator{}

// TranslatorOption mutates a SimpleTranslator during construction
type TranslatorOption func(*SimpleTranslator) error

func WithTranslatorDefaultLocale(locale string) TranslatorOption {
	return func(t *SimpleTranslator) error {
		t.defaultLocale = normalizeLocale(locale)
		return nil
	}
}

func WithTranslatorFormatter(formatter Formatter) TranslatorOption {
	return func(t *SimpleTranslator) error {
		if formatter != nil {
			t.formatter = formatter
		}
		return nil
	}
}

func WithTranslatorFallbackResolver(resolver FallbackResolver) TranslatorOption {
	return func(t *SimpleTranslator) error {
		if resolver != nil {
			t.resolver = resolver
		}
		return nil
	}
}

func NewSimpleTranslator(store Store, opts ...TranslatorOption) (*SimpleTranslator, error) {
	if store == nil {
		return nil, ErrNoStore
	}

	translator := &SimpleTranslator{
		store:     store,
		formatter: FormatterFunc(sprintfFormatter),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(translator); err != nil {
			return nil, err
		}
	}

	return translator, nil
}

func (t *SimpleTranslator) Translate(locale, key string, args ...any) (string, error) {
	result, _, err := t.TranslateWithMetadata(locale, key, args...)
	return result, err
}

// TranslateWithMetadata resolves and formats the message, reporting the
// locale that served it and any plural selection that took place.
func (t *SimpleTranslator) TranslateWithMetadata(locale, key string, args ...any) (string, map[string]any, error) {
	if t == nil || t.store == nil {
		return "", nil, ErrMissingTranslation
	}
	if key == "" {
		return "", nil, ErrMissingTranslation
	}

	message, servedLocale, ok := t.resolveMessage(locale, key)
	if !ok {
		return "", nil, ErrMissingTranslation
	}

	metadata := map[string]any{metadataServedLocale: servedLocale}

	variant := t.selectVariant(servedLocale, message, args, metadata)

	result, err := t.format(variant, args)
	if err != nil {
		return "", metadata, err
	}

	return result, metadata, nil
}

// resolveMessage walks the resolution chain until a catalog answers.
func (t *SimpleTranslator) resolveMessage(locale, key string) (Message, string, bool) {
	for _, candidate := range resolutionChain(locale, t.resolver, t.defaultLocale) {
		if message, ok := t.store.Message(candidate, key); ok {
			return message, candidate, true
		}
	}
	return Message{}, "", false
}

func (t *SimpleTranslator) selectVariant(locale string, message Message, args []any, metadata map[string]any) MessageVariant {
	count, hasCount := extractCount(args)
	if !hasCount || !message.Plural() {
		variant, _ := message.Variant(PluralOther)
		return variant
	}

	category := PluralOther
	if source, ok := t.store.(cardinalRuleSource); ok {
		if rules := source.CardinalRules(locale); rules != nil {
			category = rules.Evaluate(count)
		}
	}

	metadata[metadataPluralCategory] = category
	metadata[metadataPluralCount] = count

	variant, ok := message.Variants[category]
	if !ok {
		// requested category untranslated, fall back to "other"
		variant, _ = message.Variant(PluralOther)
		metadata[metadataPluralMissing] = map[string]PluralCategory{
			"requested": category,
			"fallback":  PluralOther,
		}
	}
	metadata[metadataPluralMessage] = variant.Template

	return variant
}

func (t *SimpleTranslator) format(variant MessageVariant, args []any) (string, error) {
	formatter := t.formatter
	if formatter == nil {
		formatter = FormatterFunc(sprintfFormatter)
	}

	// positional count gets promoted to a {count} placeholder substitution
	if variant.UsesCount {
		if count, ok := extractCount(args); ok {
			if len(args) != 1 || !isMapArg(args[0]) {
				return formatter.Format(variant.Template, map[string]any{"count": count})
			}
		}
	}

	return formatter.Format(variant.Template, args...)
}

// extractCount finds the plural count in the caller's arguments: either a
// "count" entry of a single map argument or the first numeric argument.
func extractCount(args []any) (any, bool) {
	if len(args) == 0 {
		return nil, false
	}

	if data, ok := args[0].(map[string]any); ok {
		count, exists := data["count"]
		if !exists {
			return nil, false
		}
		if _, numeric := operandsForCount(count); !numeric {
			return nil, false
		}
		return count, true
	}

	for _, arg := range args {
		if _, numeric := operandsForCount(arg); numeric {
			return arg, true
		}
	}

	return nil, false
}

func isMapArg(arg any) bool {
	_, ok := arg.(map[string]any)
	return ok
}
