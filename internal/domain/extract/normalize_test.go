package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("collapses tabs and space runs", func(t *testing.T) {
		text, lines := normalize("ПІБ:\t\tПетренко  Олександр")

		assert.Equal(t, "ПІБ: Петренко Олександр", text)
		assert.Equal(t, []string{"ПІБ: Петренко Олександр"}, lines)
	})

	t.Run("normalizes CRLF and drops blank lines", func(t *testing.T) {
		_, lines := normalize("перший\r\n\r\nдругий\n\n\nтретій")

		assert.Equal(t, []string{"перший", "другий", "третій"}, lines)
	})

	t.Run("underscore rules become spaces", func(t *testing.T) {
		text, _ := normalize("Підпис: ______ Дата: ___")

		assert.NotContains(t, text, "_")
	})

	t.Run("empty input", func(t *testing.T) {
		text, lines := normalize("")

		assert.Equal(t, "", text)
		assert.Empty(t, lines)
	})
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "багато дзвінків і нарад",
		cleanText("  багато   дзвінків\n\tі нарад  "))
	assert.Equal(t, "текст", cleanText("___текст___"))
}
