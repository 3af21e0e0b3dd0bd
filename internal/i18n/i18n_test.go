package i18n

import (
	"sort"
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
)

func TestNew_DefaultsToEnglish(t *testing.T) {
	b, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := b.CurrentLanguage(); got != "en" {
		t.Fatalf("CurrentLanguage() = %q, want en", got)
	}
	if got := b.T("nav.stores"); got != "Stores" {
		t.Fatalf("T(nav.stores) = %q", got)
	}
}

func TestSetLanguage(t *testing.T) {
	tests := []struct {
		code    string
		want    string
		wantErr bool
	}{
		{code: "ru", want: "ru"},
		{code: "ru-RU", want: "ru"},
		{code: "en-GB", want: "en"},
		{code: "not a tag", want: "en", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			b, err := New("en")
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			err = b.SetLanguage(tc.code)
			if (err != nil) != tc.wantErr {
				t.Fatalf("SetLanguage(%q) error = %v, wantErr %v", tc.code, err, tc.wantErr)
			}
			if got := b.CurrentLanguage(); got != tc.want {
				t.Fatalf("CurrentLanguage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	b, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := b.Toggle(); got != "ru" {
		t.Fatalf("Toggle() = %q, want ru", got)
	}
	if got := b.T("nav.stores"); got != "Магазины" {
		t.Fatalf("T(nav.stores) = %q after toggle", got)
	}
	if got := b.Toggle(); got != "en" {
		t.Fatalf("second Toggle() = %q, want en", got)
	}
}

func TestT_FallsBack(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.toml": {Data: []byte("[a]\nonly_en = \"english\"\nboth = \"en\"\n")},
		"locales/ru.toml": {Data: []byte("[a]\nboth = \"ru\"\n")},
	}
	b, err := load(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := b.SetLanguage("ru"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}

	if got := b.T("a.both"); got != "ru" {
		t.Fatalf("T(a.both) = %q, want ru", got)
	}
	if got := b.T("a.only_en"); got != "english" {
		t.Fatalf("T(a.only_en) = %q, want english fallback", got)
	}
	if got := b.T("a.missing"); got != "a.missing" {
		t.Fatalf("T(a.missing) = %q, want the key", got)
	}
}

func TestTf(t *testing.T) {
	b, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := b.Tf("confirm.delete_product", "Lamp"); got != `Delete product "Lamp"?` {
		t.Fatalf("Tf = %q", got)
	}
}

func TestLoad_RequiresEnglish(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/ru.toml": {Data: []byte("a = \"b\"\n")},
	}
	if _, err := load(fsys); err == nil {
		t.Fatal("expected error without an English locale")
	}
}

func TestLocales_SameKeys(t *testing.T) {
	b, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	en := b.messages[language.English]
	ru := b.messages[language.Russian]
	if ru == nil {
		t.Fatal("ru locale not loaded")
	}

	var missing []string
	for k := range en {
		if _, ok := ru[k]; !ok {
			missing = append(missing, "ru:"+k)
		}
	}
	for k := range ru {
		if _, ok := en[k]; !ok {
			missing = append(missing, "en:"+k)
		}
	}
	sort.Strings(missing)
	if len(missing) > 0 {
		t.Fatalf("keys missing from a locale: %v", missing)
	}
}

func TestLanguages(t *testing.T) {
	b, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := b.Languages()
	if len(got) != 2 || got[0] != "en" {
		t.Fatalf("Languages() = %v, want en first of two", got)
	}
}
