// Package i18n resolves the human-readable labels used in manifests: a small
// fixed set of translation keys plus language-code display names.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Bundle is a read-only label lookup for one locale. It's safe for concurrent
// use.
type Bundle struct {
	labels map[string]string
	namer  display.Namer
}

// The keys the conversion pipeline looks up. Unknown keys fall through
// unchanged, so a partial label map degrades to English-ish output instead of
// failing.
var defaultLabels = map[string]string{
	"automatically generated": "automatically generated",
	"Undefined caption":       "Undefined caption",
	"Unknown language":        "Unknown language",
}

// NewBundle creates a Bundle with the given label overrides on top of the
// defaults. Language display names are rendered in the given display
// language.
func NewBundle(labels map[string]string, displayIn language.Tag) *Bundle {
	merged := make(map[string]string, len(defaultLabels)+len(labels))
	for key, value := range defaultLabels {
		merged[key] = value
	}
	for key, value := range labels {
		merged[key] = value
	}
	return &Bundle{
		labels: merged,
		namer:  display.Languages(displayIn),
	}
}

// Default returns the English bundle.
func Default() *Bundle {
	return NewBundle(nil, language.English)
}

// Translate returns the localized label for the given key, or the key itself
// if there is no label for it.
func (b *Bundle) Translate(key string) string {
	if label, ok := b.labels[key]; ok {
		return label
	}
	return key
}

// LanguageName resolves a language code (e.g. "en", "deu") to its display
// name. ok is false for codes that can't be resolved.
func (b *Bundle) LanguageName(code string) (string, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	name := b.namer.Name(tag)
	if name == "" {
		return "", false
	}
	return name, true
}
