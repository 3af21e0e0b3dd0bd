package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// fallback supplies keys a translation is missing.
var fallback = language.English

// Bundle translates UI keys into the current language. It is safe for
// concurrent use.
type Bundle struct {
	mu        sync.RWMutex
	current   language.Tag
	supported []language.Tag
	matcher   language.Matcher
	messages  map[language.Tag]map[string]string
}

// New loads the embedded translations and selects the language best matching
// code. An unsupported code selects English.
func New(code string) (*Bundle, error) {
	b, err := load(locales)
	if err != nil {
		return nil, err
	}
	if err := b.SetLanguage(code); err != nil {
		b.current = fallback
	}
	return b, nil
}

func load(fsys fs.FS) (*Bundle, error) {
	files, err := fs.Glob(fsys, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	sort.Strings(files)

	b := &Bundle{messages: map[language.Tag]map[string]string{}}
	for _, file := range files {
		tag, err := language.Parse(strings.TrimSuffix(path.Base(file), ".toml"))
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", file, err)
		}
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", file, err)
		}
		var tree map[string]any
		if err := toml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", file, err)
		}
		msgs := map[string]string{}
		flatten("", tree, msgs)
		b.messages[tag] = msgs
		b.supported = append(b.supported, tag)
	}
	if _, ok := b.messages[fallback]; !ok {
		return nil, fmt.Errorf("locale %s missing", fallback)
	}
	// The matcher prefers its first tag when nothing matches.
	sort.SliceStable(b.supported, func(i, j int) bool { return b.supported[i] == fallback })
	b.matcher = language.NewMatcher(b.supported)
	b.current = fallback
	return b, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// CurrentLanguage returns the base language code, e.g. "en".
func (b *Bundle) CurrentLanguage() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	base, _ := b.current.Base()
	return base.String()
}

// Languages returns the supported base language codes.
func (b *Bundle) Languages() []string {
	codes := make([]string, len(b.supported))
	for i, tag := range b.supported {
		base, _ := tag.Base()
		codes[i] = base.String()
	}
	return codes
}

// SetLanguage switches to the supported language closest to code, so "ru-RU"
// selects Russian. A code with no acceptable match is an error and leaves the
// language unchanged.
func (b *Bundle) SetLanguage(code string) error {
	want, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("language %q: %w", code, err)
	}
	_, idx, conf := b.matcher.Match(want)
	if conf == language.No {
		return fmt.Errorf("language %q is not supported", code)
	}
	b.mu.Lock()
	b.current = b.supported[idx]
	b.mu.Unlock()
	return nil
}

// Toggle switches between English and Russian and returns the new code.
func (b *Bundle) Toggle() string {
	next := "ru"
	if b.CurrentLanguage() == "ru" {
		next = "en"
	}
	if err := b.SetLanguage(next); err != nil {
		return b.CurrentLanguage()
	}
	return next
}

// T translates key, falling back to English and then to the key itself.
func (b *Bundle) T(key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if msg, ok := b.messages[b.current][key]; ok {
		return msg
	}
	if msg, ok := b.messages[fallback][key]; ok {
		return msg
	}
	return key
}

// Tf translates key and formats it with args.
func (b *Bundle) Tf(key string, args ...any) string {
	return fmt.Sprintf(b.T(key), args...)
}
