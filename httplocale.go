package i18n

import (
	"context"
	"net/http"
	"time"
)

type contextKey string

const ctxKeyLocale = contextKey("i18n_locale")

// LangCookieName is the cookie consulted for an explicit language choice.
const LangCookieName = "lang"

// LangQueryParam is the query parameter consulted before the cookie.
const LangQueryParam = "lang"

// ContextWithLocale stores the resolved request locale in ctx.
func ContextWithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, locale)
}

// LocaleFromContext extracts the request locale, ok=false when unset.
func LocaleFromContext(ctx context.Context) (string, bool) {
	locale, ok := ctx.Value(ctxKeyLocale).(string)
	return locale, ok
}

// LocaleDetector resolves the request locale from, in order, the lang query
// parameter, the lang cookie and the Accept-Language header, falling back to
// the default locale. The detector only reads the request, persisting a
// choice is done with SetLocaleCookie.
type LocaleDetector struct {
	supported     []string
	supportedSet  map[string]struct{}
	defaultLocale string
}

func NewLocaleDetector(defaultLocale string, supported ...string) *LocaleDetector {
	normalized := normalizeLocales(supported)
	set := make(map[string]struct{}, len(normalized))
	for _, locale := range normalized {
		set[locale] = struct{}{}
	}

	return &LocaleDetector{
		supported:     normalized,
		supportedSet:  set,
		defaultLocale: normalizeLocale(defaultLocale),
	}
}

// Detect resolves the locale for r.
func (d *LocaleDetector) Detect(r *http.Request) string {
	if d == nil || r == nil {
		return ""
	}

	if lang := normalizeLocale(r.URL.Query().Get(LangQueryParam)); lang != "" {
		if _, ok := d.supportedSet[lang]; ok {
			return lang
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if lang := normalizeLocale(cookie.Value); lang != "" {
			if _, ok := d.supportedSet[lang]; ok {
				return lang
			}
		}
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if lang := MatchLocale(d.supported, accept, ""); lang != "" {
			return lang
		}
	}

	return d.defaultLocale
}

// Middleware resolves the request locale and stores it in the context.
func (d *LocaleDetector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := d.Detect(r)
			ctx := ContextWithLocale(r.Context(), locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetLocaleCookie persists an explicit language choice for a year.
func SetLocaleCookie(w http.ResponseWriter, locale string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    normalizeLocale(locale),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})
}
