package i18n

import (
	"path/filepath"
	"testing"
)

func TestConfigBuildTranslatorIntegration(t *testing.T) {
	loader := NewFileLoader(
		filepath.Join("testdata", "messages.json"),
		filepath.Join("testdata", "messages.yaml"),
	)

	cfg, err := NewConfig(
		WithLoader(loader),
		WithDefaultLocale("en"),
		WithLocales("en", "es", "es-MX", "el", "fr"),
		EnablePluralization(filepath.Join("testdata", "cldr_cardinal.json")),
		WithFallback("es-MX", "es"),
		WithFallback("el", "en"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	translator, err := cfg.BuildTranslator()
	if err != nil {
		t.Fatalf("BuildTranslator: %v", err)
	}

	if got, err := translator.Translate("es", "datepicker.today"); err != nil || got != "Hoy" {
		t.Fatalf("Translate(es) = %q, %v", got, err)
	}

	// es-MX falls through to es
	if got, err := translator.Translate("es-MX", "datepicker.clear"); err != nil || got != "Borrar" {
		t.Fatalf("Translate(es-MX) = %q, %v", got, err)
	}

	// el falls through to en for keys outside its catalog
	if got, err := translator.Translate("el", "dialog.close"); err != nil || got != "Close" {
		t.Fatalf("Translate(el) = %q, %v", got, err)
	}

	// plural selection through loaded cldr rules
	if got, err := translator.Translate("es", "datepicker.selected_days", 1); err != nil || got != "1 día seleccionado" {
		t.Fatalf("Translate(es, 1) = %q, %v", got, err)
	}
	if got, err := translator.Translate("es", "datepicker.selected_days", 4); err != nil || got != "4 días seleccionados" {
		t.Fatalf("Translate(es, 4) = %q, %v", got, err)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.Store == nil {
		t.Fatal("expected empty store")
	}
	if cfg.Resolver == nil {
		t.Fatal("expected default resolver")
	}
	if cfg.Formatter == nil {
		t.Fatal("expected default formatter")
	}
}

func TestConfigDefaultLocaleFromLocales(t *testing.T) {
	cfg, err := NewConfig(WithLocales("fr", "en"))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	// locales normalize sorted, the first becomes the default
	if cfg.DefaultLocale != "en" {
		t.Fatalf("DefaultLocale = %q want en", cfg.DefaultLocale)
	}
}

func TestConfigBuildDictionaryBuilder(t *testing.T) {
	loader := NewFileLoader(filepath.Join("testdata", "messages.json"))

	cfg, err := NewConfig(
		WithLoader(loader),
		WithDefaultLocale("en"),
		WithFallback("es-MX", "es"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	builder, err := cfg.BuildDictionaryBuilder()
	if err != nil {
		t.Fatalf("BuildDictionaryBuilder: %v", err)
	}

	dict, err := builder.Build("es-MX", "datepicker")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := dict.Entries["datepicker.today"]; got != "Hoy mismo" {
		t.Fatalf("datepicker.today = %q", got)
	}
	if got := dict.Entries["datepicker.clear"]; got != "Borrar" {
		t.Fatalf("datepicker.clear = %q", got)
	}
}

func TestConfigParentFallbackSeeding(t *testing.T) {
	loader := NewFileLoader(filepath.Join("testdata", "messages.json"))

	cfg, err := NewConfig(
		WithLoader(loader),
		WithDefaultLocale("en"),
		EnableParentFallbackSeeding(),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	translator, err := cfg.BuildTranslator()
	if err != nil {
		t.Fatalf("BuildTranslator: %v", err)
	}

	// es-MX picks up es without an explicit WithFallback
	if got, err := translator.Translate("es-MX", "common.ok"); err != nil || got != "Aceptar" {
		t.Fatalf("Translate(es-MX) = %q, %v", got, err)
	}
}

func TestConfigLocaleDetector(t *testing.T) {
	loader := NewFileLoader(filepath.Join("testdata", "messages.json"))

	cfg, err := NewConfig(
		WithLoader(loader),
		WithDefaultLocale("en"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	detector := cfg.LocaleDetector()
	if detector == nil {
		t.Fatal("expected detector")
	}
	if detector.defaultLocale != "en" {
		t.Fatalf("detector default = %q", detector.defaultLocale)
	}
	// locales fall back to the store's set when none configured
	if len(detector.supported) == 0 {
		t.Fatal("expected supported locales from store")
	}
}
