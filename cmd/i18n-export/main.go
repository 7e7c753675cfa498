// Command i18n-export splits translation catalogs into per locale JSON
// chunks (optionally per component) plus a manifest, so client bundlers can
// ship only the locale data a page needs.
//
// Usage:
//
//	i18n-export -out dist/locales -default en -rules cldr_cardinal.json catalogs/messages.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	i18n "github.com/goliatone/go-ssr-i18n"
)

type exportConfig struct {
	out           string
	defaultLocale string
	locales       []string
	rules         []string
	splitByComp   bool
	catalogs      []string
}

type manifest struct {
	DefaultLocale string          `json:"defaultLocale"`
	Locales       []string        `json:"locales"`
	Chunks        []manifestChunk `json:"chunks"`
}

type manifestChunk struct {
	Locale    string `json:"locale"`
	Component string `json:"component,omitempty"`
	File      string `json:"file"`
	Keys      int    `json:"keys"`
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*exportConfig, error) {
	fs := flag.NewFlagSet("i18n-export", flag.ContinueOnError)

	cfg := &exportConfig{}
	var localesCSV, rulesCSV string

	fs.StringVar(&cfg.out, "out", "dist/locales", "output directory for chunk files")
	fs.StringVar(&cfg.defaultLocale, "default", "en", "default locale used to fill untranslated keys")
	fs.StringVar(&localesCSV, "locales", "", "comma separated locale filter, empty exports all")
	fs.StringVar(&rulesCSV, "rules", "", "comma separated plural rule files")
	fs.BoolVar(&cfg.splitByComp, "split-components", false, "write one chunk per locale/component pair")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.catalogs = fs.Args()
	if len(cfg.catalogs) == 0 {
		return nil, errors.New("i18n-export: no catalog files given")
	}

	cfg.locales = splitCSV(localesCSV)
	cfg.rules = splitCSV(rulesCSV)

	return cfg, nil
}

func run(cfg *exportConfig) error {
	loader := i18n.NewFileLoader(cfg.catalogs...)
	if len(cfg.rules) > 0 {
		loader.WithPluralRuleFiles(cfg.rules...)
	}

	store, err := i18n.NewStaticStoreFromLoader(loader)
	if err != nil {
		return err
	}

	builder, err := i18n.NewDictionaryBuilder(store,
		i18n.WithDictionaryDefaultLocale(cfg.defaultLocale))
	if err != nil {
		return err
	}

	locales := store.Locales()
	if len(cfg.locales) > 0 {
		locales = intersect(locales, cfg.locales)
	}
	if len(locales) == 0 {
		return errors.New("i18n-export: no locales to export")
	}

	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		return err
	}

	m := manifest{DefaultLocale: cfg.defaultLocale, Locales: locales}

	for _, locale := range locales {
		chunks, err := exportLocale(cfg, builder, store, locale)
		if err != nil {
			return fmt.Errorf("i18n-export: %s: %w", locale, err)
		}
		m.Chunks = append(m.Chunks, chunks...)
	}

	sort.Slice(m.Chunks, func(i, j int) bool {
		if m.Chunks[i].Locale != m.Chunks[j].Locale {
			return m.Chunks[i].Locale < m.Chunks[j].Locale
		}
		return m.Chunks[i].Component < m.Chunks[j].Component
	})

	return writeJSON(filepath.Join(cfg.out, "manifest.json"), m)
}

func exportLocale(cfg *exportConfig, builder *i18n.DictionaryBuilder, store *i18n.StaticStore, locale string) ([]manifestChunk, error) {
	if !cfg.splitByComp {
		dict, err := builder.Build(locale)
		if err != nil {
			return nil, err
		}
		file := locale + ".json"
		if err := writePayload(filepath.Join(cfg.out, file), dict); err != nil {
			return nil, err
		}
		return []manifestChunk{{Locale: locale, File: file, Keys: len(dict.Entries)}}, nil
	}

	var chunks []manifestChunk
	for _, component := range store.Components() {
		dict, err := builder.Build(locale, component)
		if err != nil {
			return nil, err
		}
		if len(dict.Entries) == 0 {
			continue
		}

		dir := filepath.Join(cfg.out, locale)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}

		file := filepath.Join(locale, component+".json")
		if err := writePayload(filepath.Join(cfg.out, file), dict); err != nil {
			return nil, err
		}
		chunks = append(chunks, manifestChunk{
			Locale:    locale,
			Component: component,
			File:      filepath.ToSlash(file),
			Keys:      len(dict.Entries),
		})
	}
	return chunks, nil
}

func writePayload(path string, dict *i18n.Dictionary) error {
	return writeJSON(path, i18n.NewPayload(dict))
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func splitCSV(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func intersect(known, requested []string) []string {
	set := make(map[string]struct{}, len(requested))
	for _, locale := range requested {
		set[locale] = struct{}{}
	}

	out := make([]string, 0, len(known))
	for _, locale := range known {
		if _, ok := set[locale]; ok {
			out = append(out, locale)
		}
	}
	return out
}
