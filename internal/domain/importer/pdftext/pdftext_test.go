package pdftext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentStream(t *testing.T) {
	stream := strings.Join([]string{
		"BT",
		"/F1 12 Tf",
		"50 700 Td",
		"(ПІБ: Коваль Андрій) Tj",
		"0 -20 Td",
		"(Тиждень: 9) Tj",
		"T*",
		"[(Рік) ( ) (2026)] TJ",
		"(наступний рядок) '",
		"ET",
	}, "\n")

	text := parseContentStream([]byte(stream))
	lines := strings.Split(text, "\n")

	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, text, "ПІБ: Коваль Андрій")
	assert.Contains(t, text, "Тиждень: 9")
	assert.Contains(t, text, "Рік 2026")
	assert.Contains(t, text, "наступний рядок")

	// Label rows must stay on separate lines.
	assert.NotContains(t, lines[0], "Тиждень")
}

func TestParseContentStream_Empty(t *testing.T) {
	assert.Empty(t, parseContentStream([]byte("BT\n/F1 12 Tf\nET")))
}

func TestDecodeString(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"escaped parens", `a \(b\) c`, "a (b) c"},
		{"escaped backslash", `a\\b`, `a\b`},
		{"newline escape", `a\nb`, "a\nb"},
		{"octal space", `a\040b`, "a b"},
		{"short octal", `\61`, "1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodeString([]byte(tc.in)))
		})
	}
}

func TestCleanText(t *testing.T) {
	in := "ПІБ:   Коваль\t Андрій\nТиждень:  9\n\n\nРік: 2026"
	out := cleanText(in)

	assert.Equal(t, "ПІБ: Коваль Андрій\nТиждень: 9\n\n\nРік: 2026", out)
}

func TestExtract_RejectsGarbage(t *testing.T) {
	_, err := Extract(strings.NewReader("this is not a pdf"))
	assert.ErrorIs(t, err, ErrUnreadable)
}
