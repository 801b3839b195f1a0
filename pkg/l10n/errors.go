package l10n

import "errors"

var (
	ErrNoDefaultLanguage = errors.New("l10n: default language is required")
	ErrEmptyLanguage     = errors.New("l10n: empty language code")
	ErrInvalidLanguage   = errors.New("l10n: invalid language code")
	ErrCatalogNotFound   = errors.New("l10n: catalog directory not found")
	ErrCatalogRead       = errors.New("l10n: failed to read catalog file")
	ErrCatalogDecode     = errors.New("l10n: failed to decode catalog file")
)
