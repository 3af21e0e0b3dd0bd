// Package i18n provides the translated UI strings.
//
// Translations are TOML files embedded from locales/, one per language, named
// by BCP 47 tag. Nested tables flatten into dotted keys, so
//
//	[field]
//	name = "Name"
//
// is looked up as T("field.name"). Requested languages are matched with
// golang.org/x/text/language, so regional variants fall back to their base
// language.
package i18n
