// Package i18n provides the embedded UI string table. The original
// release shipped with mixed German and English labels; translations
// are keyed by language code with English as the fallback.
package i18n

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed translations.yaml
var translationsYAML []byte

const fallbackLanguage = "en"

var (
	loadOnce sync.Once
	table    map[string]map[string]string
)

func load() {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(translationsYAML, &table); err != nil {
			// The table is embedded; a parse failure is a packaging bug.
			panic("i18n: parse translations: " + err.Error())
		}
	})
}

// Languages returns the available language codes.
func Languages() []string {
	load()
	languages := make([]string, 0, len(table))
	for code := range table {
		languages = append(languages, code)
	}
	return languages
}

// T resolves a key for the given language, falling back to English and
// finally to the key itself.
func T(language, key string) string {
	load()
	if strings, ok := table[language]; ok {
		if value, ok := strings[key]; ok {
			return value
		}
	}
	if value, ok := table[fallbackLanguage][key]; ok {
		return value
	}
	return key
}
