package i18n

import (
	"errors"
	"testing"
)

func TestSimpleTranslatorTranslate(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": newStringCatalog("en", map[string]string{
			"home.title":    "Welcome",
			"home.greeting": "Hello %s",
		}),
		"es": newStringCatalog("es", map[string]string{
			"home.title": "Bienvenido",
		}),
	})

	translator, err := NewSimpleTranslator(store, WithTranslatorDefaultLocale("en"))
	if err != nil {
		t.Fatalf("NewSimpleTranslator: %v", err)
	}

	tests := []struct {
		name    string
		locale  string
		key     string
		args    []any
		want    string
		wantErr error
	}{
		{
			name:   "explicit locale",
			locale: "es",
			key:    "home.title",
			want:   "Bienvenido",
		},
		{
			name: "default locale",
			key:  "home.title",
			want: "Welcome",
		},
		{
			name:   "locale falls back to default for missing key",
			locale: "es",
			key:    "home.greeting",
			args:   []any{"Alice"},
			want:   "Hello Alice",
		},
		{
			name:   "format args",
			locale: "en",
			key:    "home.greeting",
			args:   []any{"Alice"},
			want:   "Hello Alice",
		},
		{
			name:    "missing key",
			locale:  "en",
			key:     "missing",
			wantErr: ErrMissingTranslation,
		},
		{
			name:    "empty key",
			locale:  "en",
			key:     "",
			wantErr: ErrMissingTranslation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := translator.Translate(tc.locale, tc.key, tc.args...)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected err %v, got %v", tc.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}

			if got != tc.want {
				t.Fatalf("Translate() = %q want %q", got, tc.want)
			}
		})
	}
}

func TestSimpleTranslatorFallbackChain(t *testing.T) {
	store := NewStaticStore(Translations{
		"en":    newStringCatalog("en", map[string]string{"a.x": "X", "a.y": "Y"}),
		"es":    newStringCatalog("es", map[string]string{"a.x": "EQUIS"}),
		"es-MX": newStringCatalog("es-MX", map[string]string{}),
	})

	resolver := NewStaticFallbackResolver()
	resolver.Set("es-MX", "es")

	translator, err := NewSimpleTranslator(store,
		WithTranslatorDefaultLocale("en"),
		WithTranslatorFallbackResolver(resolver),
	)
	if err != nil {
		t.Fatalf("NewSimpleTranslator: %v", err)
	}

	if got, _ := translator.Translate("es-MX", "a.x"); got != "EQUIS" {
		t.Fatalf("expected es fallback, got %q", got)
	}

	if got, _ := translator.Translate("es-MX", "a.y"); got != "Y" {
		t.Fatalf("expected default fallback, got %q", got)
	}
}

func TestSimpleTranslatorPluralSelection(t *testing.T) {
	rules := &PluralRuleSet{
		Locale: "en",
		Rules: []PluralRule{
			{
				Category: PluralOne,
				Groups: [][]PluralCondition{{
					{Operand: "i", Operator: OperatorEquals, Values: []float64{1}},
					{Operand: "v", Operator: OperatorEquals, Values: []float64{0}},
				}},
			},
			{Category: PluralOther},
		},
	}

	store := NewStaticStore(Translations{
		"en": newPluralCatalog("en", map[string]map[PluralCategory]string{
			"cart.items": {
				PluralOne:   "{count} item",
				PluralOther: "{count} items",
			},
		}, rules),
	})

	translator, err := NewSimpleTranslator(store, WithTranslatorDefaultLocale("en"))
	if err != nil {
		t.Fatalf("NewSimpleTranslator: %v", err)
	}

	tests := []struct {
		count any
		want  string
	}{
		{count: 1, want: "1 item"},
		{count: 2, want: "2 items"},
		{count: 0, want: "0 items"},
	}

	for _, tc := range tests {
		got, err := translator.Translate("en", "cart.items", tc.count)
		if err != nil {
			t.Fatalf("Translate(%v): %v", tc.count, err)
		}
		if got != tc.want {
			t.Fatalf("Translate(%v) = %q want %q", tc.count, got, tc.want)
		}
	}

	// map form carries the count alongside other placeholders
	got, err := translator.Translate("en", "cart.items", map[string]any{"count": 3})
	if err != nil {
		t.Fatalf("Translate(map): %v", err)
	}
	if got != "3 items" {
		t.Fatalf("Translate(map) = %q", got)
	}
}

func TestSimpleTranslatorMetadata(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": newStringCatalog("en", map[string]string{"a.x": "X"}),
	})

	resolver := NewStaticFallbackResolver()
	resolver.Set("fr", "en")

	translator, err := NewSimpleTranslator(store,
		WithTranslatorDefaultLocale("en"),
		WithTranslatorFallbackResolver(resolver),
	)
	if err != nil {
		t.Fatalf("NewSimpleTranslator: %v", err)
	}

	_, metadata, err := translator.TranslateWithMetadata("fr", "a.x")
	if err != nil {
		t.Fatalf("TranslateWithMetadata: %v", err)
	}

	if served := metadata[metadataServedLocale]; served != "en" {
		t.Fatalf("served locale = %v want en", served)
	}
}

func TestSimpleTranslatorCustomFormatter(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": newStringCatalog("en", map[string]string{
			"home.greeting": "Hello %s",
		}),
	})

	invoked := false
	formatter := FormatterFunc(func(template string, args ...any) (string, error) {
		invoked = true
		return "custom", nil
	})

	translator, err := NewSimpleTranslator(store,
		WithTranslatorDefaultLocale("en"),
		WithTranslatorFormatter(formatter),
	)
	if err != nil {
		t.Fatalf("NewSimpleTranslator: %v", err)
	}

	got, err := translator.Translate("", "home.greeting", "bob")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	if got != "custom" {
		t.Fatalf("Translate() = %q want custom", got)
	}

	if !invoked {
		t.Fatal("expected formatter to be invoked")
	}
}

func TestNewSimpleTranslatorNilStore(t *testing.T) {
	if _, err := NewSimpleTranslator(nil); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}
