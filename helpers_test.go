package i18n

// newStringCatalog builds a catalog of singular messages for tests.
func newStringCatalog(locale string, messages map[string]string) *LocaleCatalog {
	catalog := &LocaleCatalog{
		Locale:   Locale{Code: locale},
		Messages: make(map[string]Message, len(messages)),
	}

	for key, template := range messages {
		message := Message{
			MessageMetadata: MessageMetadata{
				ID:        key,
				Component: inferComponent(key),
				Locale:    locale,
			},
		}
		message.SetContent(template)
		catalog.Messages[key] = message
	}

	return catalog
}

// newPluralCatalog builds a catalog whose messages may carry plural variants.
func newPluralCatalog(locale string, messages map[string]map[PluralCategory]string, rules *PluralRuleSet) *LocaleCatalog {
	catalog := &LocaleCatalog{
		Locale:        Locale{Code: locale},
		Messages:      make(map[string]Message, len(messages)),
		CardinalRules: rules,
	}

	for key, variants := range messages {
		message := Message{
			MessageMetadata: MessageMetadata{
				ID:        key,
				Component: inferComponent(key),
				Locale:    locale,
			},
		}
		for category, template := range variants {
			message.SetVariant(category, buildVariant(template, "test"))
		}
		catalog.Messages[key] = message
	}

	return catalog
}
