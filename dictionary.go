package i18n

import (
	"fmt"
	"sort"
)

// Dictionary is the per request string table delivered to the client:
// a flat key → localized template mapping for a single locale. Immutable
// after Build returns it.
type Dictionary struct {
	// Locale is the locale the entries were resolved for. When the
	// requested locale is unknown this reports the locale actually served.
	Locale string
	// Entries maps translation keys to localized templates. Plural messages
	// contribute one entry per variant under key.<category>.
	Entries map[string]string
}

// Keys returns the sorted entry keys
func (d *Dictionary) Keys() []string {
	if d == nil || len(d.Entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(d.Entries))
	for key := range d.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DictionaryBuilder assembles per locale dictionaries restricted to the
// requested components. Safe for concurrent use, the underlying store is
// read only.
type DictionaryBuilder struct {
	store         Store
	resolver      FallbackResolver
	defaultLocale string
}

// DictionaryOption mutates a DictionaryBuilder during construction
type DictionaryOption func(*DictionaryBuilder) error

func WithDictionaryDefaultLocale(locale string) DictionaryOption {
	return func(b *DictionaryBuilder) error {
		b.defaultLocale = normalizeLocale(locale)
		return nil
	}
}

func WithDictionaryFallbackResolver(resolver FallbackResolver) DictionaryOption {
	return func(b *DictionaryBuilder) error {
		if resolver != nil {
			b.resolver = resolver
		}
		return nil
	}
}

func NewDictionaryBuilder(store Store, opts ...DictionaryOption) (*DictionaryBuilder, error) {
	if store == nil {
		return nil, ErrNoStore
	}

	builder := &DictionaryBuilder{store: store}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(builder); err != nil {
			return nil, err
		}
	}

	return builder, nil
}

// Build produces the dictionary for locale restricted to components.
// No components means every known component. Each key resolves wholly from
// the first chain locale that carries it; keys untranslated in every chain
// locale are omitted. Unknown locales serve the default locale's strings.
func (b *DictionaryBuilder) Build(locale string, components ...string) (*Dictionary, error) {
	if b == nil || b.store == nil {
		return nil, ErrNoStore
	}

	filter, err := b.componentFilter(components)
	if err != nil {
		return nil, err
	}

	locale = normalizeLocale(locale)
	chain := resolutionChain(locale, b.resolver, b.defaultLocale)

	served := b.servedLocale(locale, chain)

	entries := make(map[string]string)
	resolved := make(map[string]struct{})
	for _, candidate := range chain {
		for _, key := range b.store.Keys(candidate) {
			if _, done := resolved[key]; done {
				continue
			}
			message, ok := b.store.Message(candidate, key)
			if !ok {
				continue
			}
			if filter != nil {
				if _, wanted := filter[message.Component]; !wanted {
					continue
				}
			}
			resolved[key] = struct{}{}
			addEntries(entries, key, message)
		}
	}

	return &Dictionary{Locale: served, Entries: entries}, nil
}

// componentFilter validates the requested components against the store.
// Returns nil for the unrestricted (full) set.
func (b *DictionaryBuilder) componentFilter(components []string) (map[string]struct{}, error) {
	if len(components) == 0 {
		return nil, nil
	}

	known := make(map[string]struct{})
	for _, component := range b.store.Components() {
		known[component] = struct{}{}
	}

	filter := make(map[string]struct{}, len(components))
	for _, component := range components {
		if _, ok := known[component]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, component)
		}
		filter[component] = struct{}{}
	}

	return filter, nil
}

// servedLocale picks the locale reported to the client: the requested one
// when the store knows it, otherwise the first chain locale with data.
func (b *DictionaryBuilder) servedLocale(requested string, chain []string) string {
	known := make(map[string]struct{})
	for _, locale := range b.store.Locales() {
		known[locale] = struct{}{}
	}

	if _, ok := known[requested]; ok {
		return requested
	}

	for _, candidate := range chain {
		if _, ok := known[candidate]; ok {
			return candidate
		}
	}

	if b.defaultLocale != "" {
		return b.defaultLocale
	}
	return requested
}

// addEntries writes message templates into the dictionary. A key resolves
// wholly from a single chain locale, like the translator's per message
// resolution: variants from deeper locales never mix into it.
func addEntries(entries map[string]string, key string, message Message) {
	if !message.Plural() {
		entries[key] = message.Content()
		return
	}

	for category, variant := range message.Variants {
		entries[key+"."+string(category)] = variant.Template
	}
}
