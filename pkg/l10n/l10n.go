// Package l10n provides language negotiation and YAML message catalogs for
// strut applications: path-based resolution for the dispatcher and
// Accept-Language matching for content negotiation.
package l10n

import (
	"golang.org/x/text/language"
)

// Locales holds the configured language set of an application: the default
// language and the supported languages a request may select.
type Locales struct {
	def       string
	supported map[string]struct{}
	order     []string
	matcher   language.Matcher
}

// New creates a Locales set. The default language is implicitly supported.
// Language codes are compared verbatim (use consistent casing in routes and
// configuration).
func New(defaultLang string, supported ...string) (*Locales, error) {
	if defaultLang == "" {
		return nil, ErrNoDefaultLanguage
	}

	l := &Locales{
		def:       defaultLang,
		supported: make(map[string]struct{}, len(supported)+1),
	}

	add := func(lang string) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if _, exists := l.supported[lang]; exists {
			return nil
		}
		l.supported[lang] = struct{}{}
		l.order = append(l.order, lang)
		return nil
	}

	if err := add(defaultLang); err != nil {
		return nil, err
	}
	for _, lang := range supported {
		if err := add(lang); err != nil {
			return nil, err
		}
	}

	tags := make([]language.Tag, 0, len(l.order))
	for _, lang := range l.order {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, ErrInvalidLanguage
		}
		tags = append(tags, tag)
	}
	// The default language is first, so it wins when nothing better matches.
	l.matcher = language.NewMatcher(tags)

	return l, nil
}

// Default returns the default language.
func (l *Locales) Default() string {
	return l.def
}

// Supported returns the supported languages in registration order,
// default first.
func (l *Locales) Supported() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// IsSupported reports whether lang is in the supported set.
func (l *Locales) IsSupported(lang string) bool {
	_, ok := l.supported[lang]
	return ok
}

// ResolvePath performs path-based language negotiation on ordered URL
// segments. The first segment is consumed only when it names a supported
// language other than the default; a segment spelling out the default
// language stays in the parameter list.
func (l *Locales) ResolvePath(segments []string) (string, []string) {
	if len(segments) == 0 {
		return l.def, segments
	}
	first := segments[0]
	if first != l.def && l.IsSupported(first) {
		return first, segments[1:]
	}
	return l.def, segments
}

// Match negotiates a supported language against an Accept-Language header.
// Returns the default language when the header is empty or nothing matches.
func (l *Locales) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return l.def
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return l.def
	}
	_, index, conf := l.matcher.Match(tags...)
	if conf == language.No {
		return l.def
	}
	return l.order[index]
}
