// Package i18n resolves the translation function handed to command handlers.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// T translates key, formatting args into the message with fmt verbs
type T func(key string, args ...interface{}) string

// Translator builds a T for a Discord locale
type Translator struct {
	catalog   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

// NewTranslator loads the built-in catalogs. English is the fallback.
func NewTranslator() (*Translator, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	supported := make([]language.Tag, 0, len(catalogs))
	for tag, entries := range catalogs {
		supported = append(supported, tag)
		for key, msg := range entries {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("loading %s message %q: %w", tag, key, err)
			}
		}
	}

	// The matcher's first tag is its default.
	ordered := []language.Tag{language.English}
	for _, tag := range supported {
		if tag != language.English {
			ordered = append(ordered, tag)
		}
	}

	return &Translator{
		catalog:   builder,
		supported: ordered,
		matcher:   language.NewMatcher(ordered),
	}, nil
}

// For returns the translation function for a locale such as "es-ES" or "en-US"
func (tr *Translator) For(locale string) T {
	tag := tr.match(locale)
	printer := message.NewPrinter(tag, message.Catalog(tr.catalog))
	return func(key string, args ...interface{}) string {
		return printer.Sprintf(key, args...)
	}
}

func (tr *Translator) match(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, index, confidence := tr.matcher.Match(requested)
	if confidence == language.No {
		return language.English
	}
	return tr.supported[index]
}
