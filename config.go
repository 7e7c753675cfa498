package i18n

// Config captures translator and delivery setup
type Config struct {
	DefaultLocale string
	Locales       []string
	Loader        Loader
	Store         Store
	Resolver      FallbackResolver
	Formatter     Formatter
	Hooks         []TranslationHook

	enablePlural        bool
	pluralRules         []string
	seedParentFallbacks bool
}

type pluralRuleLoader interface {
	WithPluralRules(paths ...string) Loader
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.normalizeLocales()
	cfg.applyPluralRuleOptions()

	if cfg.Store == nil {
		if cfg.Loader != nil {
			store, err := NewStaticStoreFromLoader(cfg.Loader)
			if err != nil {
				return nil, err
			}
			cfg.Store = store
		} else {
			cfg.Store = NewStaticStore(nil)
		}
	}

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	if cfg.Formatter == nil {
		cfg.Formatter = FormatterFunc(sprintfFormatter)
	}

	if cfg.DefaultLocale == "" && len(cfg.Locales) > 0 {
		cfg.DefaultLocale = cfg.Locales[0]
	}

	return cfg, nil
}

// WithDefaultLocale sets the default locale in Config
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = normalizeLocale(locale)
		return nil
	}
}

// WithLocales registers supported locales
func WithLocales(locales ...string) Option {
	return func(c *Config) error {
		c.Locales = append(c.Locales, locales...)
		return nil
	}
}

func WithLoader(loader Loader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

func WithStore(store Store) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

func WithFormatter(formatter Formatter) Option {
	return func(c *Config) error {
		c.Formatter = formatter
		return nil
	}
}

func WithTranslatorHooks(hooks ...TranslationHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

// EnablePluralization wires pluralization defaults, registering cardinal rule
// files via loader aware options.
func EnablePluralization(rulePaths ...string) Option {
	return func(c *Config) error {
		c.enablePlural = true
		if len(rulePaths) > 0 {
			c.pluralRules = append(c.pluralRules, rulePaths...)
		}
		return nil
	}
}

// EnableParentFallbackSeeding opts into automatic fallback chain seeding from
// locale parent tags (es-MX picks up es without an explicit WithFallback).
func EnableParentFallbackSeeding() Option {
	return func(c *Config) error {
		c.seedParentFallbacks = true
		return nil
	}
}

func (cfg *Config) BuildTranslator() (Translator, error) {
	if cfg == nil {
		return nil, ErrNoStore
	}

	cfg.seedResolverFallbacks()

	base, err := NewSimpleTranslator(cfg.Store,
		WithTranslatorDefaultLocale(cfg.DefaultLocale),
		WithTranslatorFormatter(cfg.Formatter),
		WithTranslatorFallbackResolver(cfg.Resolver))
	if err != nil {
		return nil, err
	}

	var translator Translator = base

	if len(cfg.Hooks) > 0 {
		translator = WrapTranslatorWithHooks(translator, cfg.Hooks...)
	}

	return translator, nil
}

// BuildDictionaryBuilder wires the configured store, resolver and default
// locale into a DictionaryBuilder.
func (cfg *Config) BuildDictionaryBuilder() (*DictionaryBuilder, error) {
	if cfg == nil {
		return nil, ErrNoStore
	}

	cfg.seedResolverFallbacks()

	return NewDictionaryBuilder(cfg.Store,
		WithDictionaryDefaultLocale(cfg.DefaultLocale),
		WithDictionaryFallbackResolver(cfg.Resolver))
}

// LocaleDetector builds a request locale detector over the configured
// locales (or the store's when none were configured).
func (cfg *Config) LocaleDetector() *LocaleDetector {
	if cfg == nil {
		return NewLocaleDetector("")
	}

	locales := cfg.Locales
	if len(locales) == 0 && cfg.Store != nil {
		locales = cfg.Store.Locales()
	}

	return NewLocaleDetector(cfg.DefaultLocale, locales...)
}

// TemplateHelpers exposes template helpers bound to t.
func (cfg *Config) TemplateHelpers(t Translator, helperCfg HelperConfig) map[string]any {
	return TemplateHelpers(t, helperCfg)
}

func (cfg *Config) normalizeLocales() {
	cfg.Locales = normalizeLocales(cfg.Locales)
}

func (cfg *Config) applyPluralRuleOptions() {
	if !cfg.enablePlural || len(cfg.pluralRules) == 0 || cfg.Loader == nil {
		return
	}

	if loader, ok := cfg.Loader.(pluralRuleLoader); ok {
		cfg.Loader = loader.WithPluralRules(cfg.pluralRules...)
	}
}

func (cfg *Config) seedResolverFallbacks() {
	if !cfg.seedParentFallbacks {
		return
	}

	resolver, ok := cfg.Resolver.(*StaticFallbackResolver)
	if !ok || resolver == nil {
		return
	}

	seen := make(map[string]struct{}, len(cfg.Locales))
	var localeCandidates []string

	appendCandidate := func(locale string) {
		if locale == "" {
			return
		}
		if _, exists := seen[locale]; exists {
			return
		}
		seen[locale] = struct{}{}
		localeCandidates = append(localeCandidates, locale)
	}

	if cfg.Store != nil {
		for _, locale := range cfg.Store.Locales() {
			appendCandidate(locale)
		}
	}

	for _, locale := range cfg.Locales {
		appendCandidate(locale)
	}

	for _, locale := range localeCandidates {
		if existing := resolver.Resolve(locale); existing != nil {
			continue
		}
		chain := localeParentChain(locale)
		if len(chain) == 0 {
			continue
		}
		resolver.Set(locale, chain...)
	}
}
