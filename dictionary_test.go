package i18n

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func testStore(t *testing.T) *StaticStore {
	t.Helper()

	loader := NewFileLoader(
		filepath.Join("testdata", "messages.json"),
		filepath.Join("testdata", "messages.yaml"),
	)

	store, err := NewStaticStoreFromLoader(loader)
	if err != nil {
		t.Fatalf("NewStaticStoreFromLoader: %v", err)
	}
	return store
}

func testBuilder(t *testing.T) *DictionaryBuilder {
	t.Helper()

	resolver := NewStaticFallbackResolver()
	resolver.Set("es-MX", "es")
	resolver.Set("fr", "en")

	builder, err := NewDictionaryBuilder(testStore(t),
		WithDictionaryDefaultLocale("en"),
		WithDictionaryFallbackResolver(resolver),
	)
	if err != nil {
		t.Fatalf("NewDictionaryBuilder: %v", err)
	}
	return builder
}

func TestBuildRestrictsToComponents(t *testing.T) {
	builder := testBuilder(t)

	dict, err := builder.Build("fr", "datepicker")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if dict.Locale != "fr" {
		t.Fatalf("Locale = %q want fr", dict.Locale)
	}

	for key := range dict.Entries {
		if !strings.HasPrefix(key, "datepicker.") {
			t.Fatalf("unexpected key %q outside requested component", key)
		}
	}

	if got := dict.Entries["datepicker.today"]; got != "Aujourd'hui" {
		t.Fatalf("datepicker.today = %q", got)
	}

	// fr has no datepicker-unrelated keys, but the component filter must
	// also exclude keys the fallback chain would otherwise pull from en
	if _, ok := dict.Entries["dialog.close"]; ok {
		t.Fatal("dialog key leaked through component filter")
	}
	if _, ok := dict.Entries["common.ok"]; ok {
		t.Fatal("common key leaked through component filter")
	}
}

func TestBuildFullSetWhenNoComponents(t *testing.T) {
	builder := testBuilder(t)

	dict, err := builder.Build("en")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"common.cancel",
		"common.ok",
		"datepicker.clear",
		"datepicker.selected_days.one",
		"datepicker.selected_days.other",
		"datepicker.today",
		"dialog.close",
	}
	if got := dict.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v want %v", got, want)
	}
}

func TestBuildFallbackFillsGaps(t *testing.T) {
	builder := testBuilder(t)

	dict, err := builder.Build("es-MX")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		// own catalog wins
		{key: "datepicker.today", want: "Hoy mismo"},
		// es fills the gap
		{key: "datepicker.clear", want: "Borrar"},
		{key: "common.ok", want: "Aceptar"},
		{key: "dialog.close", want: "Cerrar"},
	}

	for _, tc := range tests {
		if got := dict.Entries[tc.key]; got != tc.want {
			t.Fatalf("Entries[%q] = %q want %q", tc.key, got, tc.want)
		}
	}

	if dict.Locale != "es-MX" {
		t.Fatalf("Locale = %q want es-MX", dict.Locale)
	}
}

func TestBuildUnknownLocaleServesDefault(t *testing.T) {
	builder := testBuilder(t)

	dict, err := builder.Build("ja")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if dict.Locale != "en" {
		t.Fatalf("Locale = %q want en", dict.Locale)
	}

	if got := dict.Entries["datepicker.today"]; got != "Today" {
		t.Fatalf("datepicker.today = %q", got)
	}
}

func TestBuildUnknownComponent(t *testing.T) {
	builder := testBuilder(t)

	_, err := builder.Build("en", "datepicker", "carousel")
	if !errors.Is(err, ErrUnknownComponent) {
		t.Fatalf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestBuildDeterministic(t *testing.T) {
	builder := testBuilder(t)

	first, err := builder.Build("es-MX", "datepicker")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := builder.Build("es-MX", "datepicker")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated builds differ: %v vs %v", first, second)
	}
}

func TestBuildKeyResolvesFromSingleLocale(t *testing.T) {
	// fr declares fewer plural categories than en; the fallback chain must
	// not splice English variants into a key fr already resolves
	translations := Translations{
		"en": newPluralCatalog("en", map[string]map[PluralCategory]string{
			"datepicker.selected_days": {
				PluralZero:  "No days selected",
				PluralOne:   "{count} day selected",
				PluralOther: "{count} days selected",
			},
		}, nil),
		"fr": newPluralCatalog("fr", map[string]map[PluralCategory]string{
			"datepicker.selected_days": {
				PluralOne:   "{count} jour sélectionné",
				PluralOther: "{count} jours sélectionnés",
			},
		}, nil),
	}

	builder, err := NewDictionaryBuilder(NewStaticStore(translations),
		WithDictionaryDefaultLocale("en"))
	if err != nil {
		t.Fatalf("NewDictionaryBuilder: %v", err)
	}

	dict, err := builder.Build("fr")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := dict.Entries["datepicker.selected_days.one"]; got != "{count} jour sélectionné" {
		t.Fatalf("one variant = %q", got)
	}
	if _, ok := dict.Entries["datepicker.selected_days.zero"]; ok {
		t.Fatalf("zero variant spliced in from the fallback locale: %v", dict.Entries)
	}
}

func TestBuildSingularShadowsFallbackPlural(t *testing.T) {
	// a key singular in fr but plural in en resolves as fr's singular only,
	// without picking up English variant entries alongside it
	translations := Translations{
		"en": newPluralCatalog("en", map[string]map[PluralCategory]string{
			"toolbar.items": {
				PluralOne:   "{count} item",
				PluralOther: "{count} items",
			},
		}, nil),
		"fr": newStringCatalog("fr", map[string]string{
			"toolbar.items": "Éléments",
		}),
	}

	builder, err := NewDictionaryBuilder(NewStaticStore(translations),
		WithDictionaryDefaultLocale("en"))
	if err != nil {
		t.Fatalf("NewDictionaryBuilder: %v", err)
	}

	dict, err := builder.Build("fr")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := map[string]string{"toolbar.items": "Éléments"}
	if !reflect.DeepEqual(dict.Entries, want) {
		t.Fatalf("Entries = %v want %v", dict.Entries, want)
	}
}

func TestBuildPluralVariantsExpand(t *testing.T) {
	builder := testBuilder(t)

	dict, err := builder.Build("es", "datepicker")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := dict.Entries["datepicker.selected_days.one"]; got != "{count} día seleccionado" {
		t.Fatalf("one variant = %q", got)
	}
	if got := dict.Entries["datepicker.selected_days.other"]; got != "{count} días seleccionados" {
		t.Fatalf("other variant = %q", got)
	}
	if _, ok := dict.Entries["datepicker.selected_days"]; ok {
		t.Fatal("plural message leaked its bare key")
	}
}
