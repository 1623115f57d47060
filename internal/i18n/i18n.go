package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.toml
var builtin embed.FS

// Params holds named values substituted into {{name}} placeholders.
type Params map[string]any

// Translator maps a translation key, plus optional params, to display text.
// Unknown keys come back unchanged.
type Translator interface {
	T(key string, params ...Params) string
}

// Bundle is a set of locale catalogs. English is always present and is the
// fallback for keys a locale does not define.
// Safe for concurrent use.
type Bundle struct {
	mu      sync.RWMutex
	builder *catalog.Builder
	langs   []language.Tag
	keys    map[language.Tag]map[string]struct{}
}

// NewBundle returns a Bundle seeded with the built-in catalogs.
func NewBundle() *Bundle {
	b := &Bundle{
		builder: catalog.NewBuilder(catalog.Fallback(language.English)),
		langs:   []language.Tag{language.English},
		keys:    make(map[language.Tag]map[string]struct{}),
	}
	entries, _ := fs.ReadDir(builtin, "locales")
	for _, e := range entries {
		data, err := fs.ReadFile(builtin, "locales/"+e.Name())
		if err != nil {
			continue
		}
		// Built-in catalogs are compiled in; a parse failure here is a build defect.
		if err := b.AddTOML(localeFromFile(e.Name()), data); err != nil {
			panic(fmt.Sprintf("i18n: built-in catalog %s: %v", e.Name(), err))
		}
	}
	return b
}

// AddTOML parses a TOML catalog for locale and merges it into the bundle.
// Nested tables become dotted keys.
func (b *Bundle) AddTOML(locale string, data []byte) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("parse locale %q: %w", locale, err)
	}
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parse catalog %q: %w", locale, err)
	}
	flat := make(map[string]string)
	flatten("", tree, flat)

	b.mu.Lock()
	defer b.mu.Unlock()
	known := b.keys[tag]
	if known == nil {
		known = make(map[string]struct{}, len(flat))
		b.keys[tag] = known
	}
	for key, msg := range flat {
		// Messages are stored as format strings; keep literal percent signs.
		if err := b.builder.SetString(tag, key, strings.ReplaceAll(msg, "%", "%%")); err != nil {
			return fmt.Errorf("set %s/%s: %w", locale, key, err)
		}
		known[key] = struct{}{}
	}
	if !containsTag(b.langs, tag) {
		b.langs = append(b.langs, tag)
	}
	return nil
}

// LoadDir merges every <locale>.toml file found in dir. A missing directory
// is not an error.
func (b *Bundle) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := b.AddTOML(localeFromFile(name), data); err != nil {
			return err
		}
	}
	return nil
}

// Languages lists the locales the bundle has catalogs for, English first.
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]language.Tag(nil), b.langs...)
}

// Localizer returns a Translator for the closest supported match of locale.
// Unparseable or unsupported locales resolve to English.
func (b *Bundle) Localizer(locale string) *Localizer {
	langs := b.Languages()
	tag := language.English
	if want, err := language.Parse(locale); err == nil {
		_, idx, conf := language.NewMatcher(langs).Match(want)
		if conf != language.No {
			tag = langs[idx]
		}
	}
	return &Localizer{
		bundle:   b,
		tag:      tag,
		printer:  message.NewPrinter(tag, message.Catalog(b.builder)),
		fallback: message.NewPrinter(language.English, message.Catalog(b.builder)),
	}
}

// Localizer translates keys for one locale, falling back to English.
type Localizer struct {
	bundle   *Bundle
	tag      language.Tag
	printer  *message.Printer
	fallback *message.Printer
}

// Language reports the locale the Localizer resolved to.
func (l *Localizer) Language() language.Tag { return l.tag }

// T implements Translator.
func (l *Localizer) T(key string, params ...Params) string {
	switch {
	case l.bundle.has(l.tag, key):
		return interpolate(l.printer.Sprintf(key), params)
	case l.bundle.has(language.English, key):
		return interpolate(l.fallback.Sprintf(key), params)
	default:
		return interpolate(key, params)
	}
}

func (b *Bundle) has(tag language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.keys[tag][key]
	return ok
}

// interpolate fills every {{name}} in one pass, so a value that itself
// contains a placeholder is left as written. Later params win.
func interpolate(s string, params []Params) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	merged := make(map[string]any)
	for _, p := range params {
		for name, v := range p {
			merged[name] = v
		}
	}
	if len(merged) == 0 {
		return s
	}
	pairs := make([]string, 0, 2*len(merged))
	for name, v := range merged {
		pairs = append(pairs, "{{"+name+"}}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(key, v, out)
		case string:
			out[key] = v
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}

func containsTag(tags []language.Tag, t language.Tag) bool {
	for _, have := range tags {
		if have == t {
			return true
		}
	}
	return false
}

func localeFromFile(name string) string {
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}
