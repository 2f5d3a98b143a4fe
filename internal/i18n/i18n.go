// Package i18n resolves user-facing strings by stable keys. Keys carry a
// namespace prefix ("modal~", "monitoring~", "public~") and the English text
// they stand for, so a missing translation still reads sensibly.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator looks up display strings. Returned strings are opaque display
// values.
type Translator interface {
	T(key string, args ...any) string
}

var supported = []language.Tag{language.English, language.Portuguese}

// Catalog is a Translator backed by the built-in message catalog.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns the catalog for the closest supported language. Unknown or
// empty languages fall back to English.
func New(lang string) *Catalog {
	tag := language.English
	if lang != "" {
		if requested, err := language.Parse(lang); err == nil {
			_, index, confidence := language.NewMatcher(supported).Match(requested)
			if confidence != language.No {
				tag = supported[index]
			}
		}
	}

	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builtin)),
	}
}

// T formats the message registered under key with args.
func (c *Catalog) T(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}

// Language returns the BCP 47 tag in use.
func (c *Catalog) Language() string {
	return c.tag.String()
}

// Languages returns the supported language tags.
func Languages() []string {
	tags := make([]string, len(supported))
	for i, tag := range supported {
		tags[i] = tag.String()
	}
	return tags
}

var builtin = mustBuild()

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, e := range entries {
		if err := b.Set(language.English, e.key, e.en); err != nil {
			panic(err)
		}
		if e.pt != nil {
			if err := b.Set(language.Portuguese, e.key, e.pt); err != nil {
				panic(err)
			}
		}
	}
	return b
}
