package i18n

import "errors"

// ErrMissingTranslation indicates that no translation was found for locale/key.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// ErrUnknownComponent indicates a dictionary was requested for a component
// with no known keys in any locale.
var ErrUnknownComponent = errors.New("i18n: unknown component")

// ErrNoStore marks constructors invoked without a backing store
var ErrNoStore = errors.New("i18n: no store configured")
