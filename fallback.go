package i18n

// FallbackResolver resolves fallback locale chains
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver keeps explicitly configured chains, e.g.
// es-MX → es → en. Chains are stored normalized and deduplicated.
type StaticFallbackResolver struct {
	chains map[string][]string
}

var _ FallbackResolver = &StaticFallbackResolver{}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set registers the fallback chain for locale, replacing any previous one.
func (s *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	if s == nil {
		return
	}
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}
	if s.chains == nil {
		s.chains = make(map[string][]string)
	}

	seen := map[string]struct{}{locale: {}}
	chain := make([]string, 0, len(fallbacks))
	for _, fallback := range fallbacks {
		fallback = normalizeLocale(fallback)
		if fallback == "" {
			continue
		}
		if _, exists := seen[fallback]; exists {
			continue
		}
		seen[fallback] = struct{}{}
		chain = append(chain, fallback)
	}

	s.chains[locale] = chain
}

// Resolve returns a copy of the configured chain, nil when none is set.
func (s *StaticFallbackResolver) Resolve(locale string) []string {
	if s == nil || len(s.chains) == 0 {
		return nil
	}

	chain, ok := s.chains[normalizeLocale(locale)]
	if !ok || len(chain) == 0 {
		return nil
	}

	out := make([]string, len(chain))
	copy(out, chain)
	return out
}

// resolutionChain expands locale into the candidate list used for lookups:
// the locale itself, its configured fallbacks, and finally defaultLocale.
// Parent tag chains participate only when seeded into the resolver, see
// EnableParentFallbackSeeding.
func resolutionChain(locale string, resolver FallbackResolver, defaultLocale string) []string {
	seen := make(map[string]struct{}, 4)
	var chain []string

	appendLocale := func(candidate string) {
		candidate = normalizeLocale(candidate)
		if candidate == "" {
			return
		}
		if _, exists := seen[candidate]; exists {
			return
		}
		seen[candidate] = struct{}{}
		chain = append(chain, candidate)
	}

	appendLocale(locale)

	if resolver != nil {
		for _, fallback := range resolver.Resolve(locale) {
			appendLocale(fallback)
		}
	}

	appendLocale(defaultLocale)

	return chain
}
