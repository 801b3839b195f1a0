package l10n

import (
	"errors"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// Catalog holds keyed messages per language, loaded from YAML files.
// Lookups fall back to the default language, then to the key itself.
type Catalog struct {
	messages map[string]map[string]string
	def      string
}

// LoadDir loads message catalogs for the given locales from a directory
// (conventionally resource/l10n). Each supported language may have a
// <lang>.yaml or <lang>.yml file containing a flat string map; missing files
// are skipped.
func LoadDir(fsys fs.FS, locales *Locales) (*Catalog, error) {
	c := &Catalog{
		messages: make(map[string]map[string]string),
		def:      locales.Default(),
	}

	for _, lang := range locales.Supported() {
		data, name, err := readCatalogFile(fsys, lang)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrCatalogRead, err)
		}

		msgs := make(map[string]string)
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, errors.Join(ErrCatalogDecode, errors.New(name), err)
		}
		c.messages[lang] = msgs
	}

	return c, nil
}

func readCatalogFile(fsys fs.FS, lang string) ([]byte, string, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		name := path.Clean(lang + ext)
		data, err := fs.ReadFile(fsys, name)
		if err == nil {
			return data, name, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, name, err
		}
	}
	return nil, "", fs.ErrNotExist
}

// T returns the message for key in lang, falling back to the default
// language and finally to the key itself.
func (c *Catalog) T(lang, key string) string {
	if msgs, ok := c.messages[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if lang != c.def {
		if msgs, ok := c.messages[c.def]; ok {
			if msg, ok := msgs[key]; ok {
				return msg
			}
		}
	}
	return key
}

// Languages returns the languages that have at least one loaded message.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		out = append(out, lang)
	}
	return out
}

// Has reports whether the catalog carries any messages for lang.
func (c *Catalog) Has(lang string) bool {
	msgs, ok := c.messages[lang]
	return ok && len(msgs) > 0
}
