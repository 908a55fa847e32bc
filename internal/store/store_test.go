package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceFreeText(t *testing.T) {
	// JSON id arrays are resolved elsewhere, never surfaced as text
	assert.Equal(t, "", serviceFreeText("[1,2,3]"))
	assert.Equal(t, "", serviceFreeText(""))
	assert.Equal(t, "", serviceFreeText("  "))

	// legacy spreadsheet imports carry free text
	assert.Equal(t, "Haircut, Spa", serviceFreeText("Haircut, Spa"))
}

func TestMessageKeyNormalizesWhitespace(t *testing.T) {
	assert.Equal(t, messageKey("99001 ", "hello"), messageKey("99001", " hello"))
	assert.NotEqual(t, messageKey("99001", "hello"), messageKey("99002", "hello"))
}
