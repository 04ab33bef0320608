// Package i18n translates message keys into player-facing text.
//
// Locales are flat key/value catalogs named by language code
// (locales/en.yaml). Built-in locales are embedded; a language directory
// can add locales or override keys. Placeholders use {name} syntax and are
// filled with locale-formatted values.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the fallback for unknown languages and missing keys.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Translator resolves message keys for a language.
type Translator struct {
	locales map[string]map[string]string
	codes   []string
	tags    []language.Tag
	matcher language.Matcher
}

// New returns a Translator holding the embedded locales.
func New() (*Translator, error) {
	t := &Translator{locales: make(map[string]map[string]string)}
	if err := t.loadFS(embeddedLocales, "locales"); err != nil {
		return nil, err
	}
	if _, ok := t.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}
	return t, nil
}

// LoadDir merges locale files (*.yaml, *.yml, *.json) from dir.
// A missing directory is not an error.
func (t *Translator) LoadDir(dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return t.loadFS(os.DirFS(dir), ".")
}

func (t *Translator) loadFS(fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("reading locales %s: %w", root, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}
		raw, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(root, e.Name())))
		if err != nil {
			return fmt.Errorf("reading locale %s: %w", e.Name(), err)
		}
		code := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if err := t.AddLocale(code, ext, raw); err != nil {
			return err
		}
	}
	return nil
}

// AddLocale parses a catalog in the given format (".yaml" or ".json") and
// merges it into the locale code.
func (t *Translator) AddLocale(code, format string, raw []byte) error {
	tag, err := language.Parse(code)
	if err != nil {
		return fmt.Errorf("locale %q: %w", code, err)
	}
	var msgs map[string]string
	if strings.EqualFold(format, ".json") {
		err = json.Unmarshal(raw, &msgs)
	} else {
		err = yaml.Unmarshal(raw, &msgs)
	}
	if err != nil {
		return fmt.Errorf("parsing locale %s: %w", code, err)
	}

	code = tag.String()
	dst, ok := t.locales[code]
	if !ok {
		dst = make(map[string]string, len(msgs))
		t.locales[code] = dst
	}
	for k, v := range msgs {
		dst[strings.TrimSpace(k)] = v
	}
	t.rebuildMatcher()
	slog.Debug("locale loaded", "locale", code, "messages", len(msgs))
	return nil
}

func (t *Translator) rebuildMatcher() {
	codes := make([]string, 0, len(t.locales))
	for code := range t.locales {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	// Base locale first: the matcher falls back to the first tag.
	if i := slices.Index(codes, BaseLocale); i > 0 {
		codes = append([]string{BaseLocale}, slices.Delete(codes, i, i+1)...)
	}
	tags := make([]language.Tag, len(codes))
	for i, code := range codes {
		tags[i] = language.Make(code)
	}
	t.codes = codes
	t.tags = tags
	t.matcher = language.NewMatcher(tags)
}

// Languages returns the available locale codes, base locale first.
func (t *Translator) Languages() []string {
	return slices.Clone(t.codes)
}

// Resolve maps a requested language code to the closest available locale.
func (t *Translator) Resolve(lang string) string {
	if _, ok := t.locales[lang]; ok {
		return lang
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return BaseLocale
	}
	_, idx, conf := t.matcher.Match(tag)
	if conf == language.No {
		return BaseLocale
	}
	return t.codes[idx]
}

// Translate returns the text for key in lang with {name} placeholders
// replaced from params. Missing keys fall back to the base locale, then to
// the key itself.
func (t *Translator) Translate(lang, key string, params map[string]any) string {
	code := t.Resolve(lang)
	text, ok := t.locales[code][key]
	if !ok {
		text, ok = t.locales[BaseLocale][key]
	}
	if !ok {
		slog.Debug("missing translation", "locale", code, "key", key)
		return key
	}
	if len(params) == 0 {
		return text
	}

	p := message.NewPrinter(language.Make(code))
	pairs := make([]string, 0, len(params)*2)
	for name, v := range params {
		pairs = append(pairs, "{"+name+"}", p.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
