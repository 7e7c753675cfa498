package i18n

import (
	"errors"
	"sort"
	"sync"
)

const (
	metadataServedLocale   = "served_locale"
	metadataPluralCategory = "plural_category"
	metadataPluralCount    = "plural_count"
	metadataPluralMessage  = "plural_message"
	metadataPluralMissing  = "plural_missing"
)

type TranslationHook interface {
	BeforeTranslate(ctx *TranslatorHookContext)
	AfterTranslate(ctx *TranslatorHookContext)
}

type TranslatorHookContext struct {
	Locale   string
	Key      string
	Args     []any
	Result   string
	Error    error
	Metadata map[string]any
}

func (ctx *TranslatorHookContext) ensureMetadata() {
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
}

func (ctx *TranslatorHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	ctx.ensureMetadata()
	ctx.Metadata[key] = value
}

func (ctx *TranslatorHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// ServedLocale reports which locale in the fallback chain answered.
func (ctx *TranslatorHookContext) ServedLocale() (string, bool) {
	value, ok := ctx.MetadataValue(metadataServedLocale)
	if !ok {
		return "", false
	}
	locale, ok := value.(string)
	return locale, ok
}

// PluralCategory reports the plural category selected during resolution.
func (ctx *TranslatorHookContext) PluralCategory() (PluralCategory, bool) {
	value, ok := ctx.MetadataValue(metadataPluralCategory)
	if !ok {
		return "", false
	}

	switch v := value.(type) {
	case PluralCategory:
		return v, true
	case string:
		return PluralCategory(v), true
	default:
		return "", false
	}
}

type TranslationHookFuncs struct {
	Before func(ctx *TranslatorHookContext)
	After  func(ctx *TranslatorHookContext)
}

func (h TranslationHookFuncs) BeforeTranslate(ctx *TranslatorHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h TranslationHookFuncs) AfterTranslate(ctx *TranslatorHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

var _ Translator = &HookedTranslator{}

type HookedTranslator struct {
	next  Translator
	hooks []TranslationHook
}

func WrapTranslatorWithHooks(next Translator, hooks ...TranslationHook) Translator {
	if next == nil || len(hooks) == 0 {
		return next
	}

	filtered := make([]TranslationHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}

		filtered = append(filtered, hook)
	}

	if len(filtered) == 0 {
		return next
	}

	return &HookedTranslator{next: next, hooks: filtered}
}

func (t *HookedTranslator) Translate(locale, key string, args ...any) (string, error) {
	if t == nil || t.next == nil {
		return "", ErrMissingTranslation
	}

	ctx := &TranslatorHookContext{
		Locale: locale,
		Key:    key,
		Args:   args,
	}

	for _, hook := range t.hooks {
		hook.BeforeTranslate(ctx)
	}

	var (
		result   string
		err      error
		metadata map[string]any
	)

	if mt, ok := t.next.(metadataTranslator); ok {
		result, metadata, err = mt.TranslateWithMetadata(ctx.Locale, ctx.Key, ctx.Args...)
		if len(metadata) > 0 {
			for key, value := range metadata {
				ctx.SetMetadata(key, value)
			}
		}
	} else {
		result, err = t.next.Translate(ctx.Locale, ctx.Key, ctx.Args...)
	}

	ctx.Result = result
	ctx.Error = err

	for _, hook := range t.hooks {
		hook.AfterTranslate(ctx)
	}

	result = ctx.Result
	err = ctx.Error

	return result, err
}

// MissingKeyRecorder is an after hook collecting locale/key pairs that failed
// to resolve, useful for surfacing untranslated strings during development.
type MissingKeyRecorder struct {
	mu      sync.Mutex
	missing map[string]struct{}
}

var _ TranslationHook = &MissingKeyRecorder{}

func NewMissingKeyRecorder() *MissingKeyRecorder {
	return &MissingKeyRecorder{missing: make(map[string]struct{})}
}

func (r *MissingKeyRecorder) BeforeTranslate(ctx *TranslatorHookContext) {}

func (r *MissingKeyRecorder) AfterTranslate(ctx *TranslatorHookContext) {
	if r == nil || ctx == nil {
		return
	}
	if !errors.Is(ctx.Error, ErrMissingTranslation) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.missing == nil {
		r.missing = make(map[string]struct{})
	}
	r.missing[ctx.Locale+"/"+ctx.Key] = struct{}{}
}

// Missing returns the sorted locale/key pairs recorded so far.
func (r *MissingKeyRecorder) Missing() []string {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.missing))
	for entry := range r.missing {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}
