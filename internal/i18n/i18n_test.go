package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationLookup(t *testing.T) {
	assert.Equal(t, "Start work", T("en", "start_work"))
	assert.Equal(t, "Arbeit starten", T("de", "start_work"))
}

func TestTranslationFallbacks(t *testing.T) {
	// Unknown language falls back to English.
	assert.Equal(t, T("en", "start_work"), T("fr", "start_work"))

	// Unknown key falls back to the key itself.
	assert.Equal(t, "no_such_key", T("en", "no_such_key"))
}

func TestLanguages(t *testing.T) {
	languages := Languages()
	assert.Contains(t, languages, "en")
	assert.Contains(t, languages, "de")
}
