package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"R$ 1.000.000,50", 1000000.50, true},
		{"500000", 500000, true},
		{"1,5", 1.5, true},
		{"1,2,3", 1.2, true},
		{",75", 0.75, true},
		{"", 0, false},
		{"abc", 0, false},
		{"R$", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseCurrency(c.in)
		assert.Equal(t, c.ok, ok, "ParseCurrency(%q)", c.in)
		if c.ok {
			assert.InDelta(t, c.want, got, 1e-9, "ParseCurrency(%q)", c.in)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", FormatCurrency(1234.5))
	assert.Equal(t, "R$ 0,00", FormatCurrency(0))
	assert.Equal(t, "1.000.000,00", FormatNumber(1000000))
}

func TestParseDate_Compact(t *testing.T) {
	got, ok := ParseDate("20240111")
	require.True(t, ok)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 11, got.Day())
}

func TestParseDate_FreeForm(t *testing.T) {
	for _, in := range []string{"2024-01-11T10:30:00", "2024-01-11", "2024-01-11T10:30:00Z", "11/01/2024"} {
		got, ok := ParseDate(in)
		require.True(t, ok, in)
		assert.Equal(t, 11, got.Day(), in)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "2024-13-45"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "N/A", FormatDate(""))
	assert.Equal(t, "11/01/2024", FormatDate("20240111"))
	assert.Equal(t, "11/01/2024", FormatDate("2024-01-11T08:00:00"))
	assert.Equal(t, "amanhã", FormatDate("amanhã"))
}

func TestCompactDate(t *testing.T) {
	assert.Equal(t, "20240111", CompactDate("2024-01-11"))
	assert.Equal(t, "20240111", CompactDate("20240111"))
	assert.Equal(t, "2024-99-99", CompactDate("2024-99-99"))
}

func TestModalidadeName(t *testing.T) {
	assert.Equal(t, "Pregão", ModalidadeName("6"))
	assert.Equal(t, "Credenciamento", ModalidadeName("12"))
	assert.Equal(t, "99", ModalidadeName("99"))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "N/A", TruncateText("", 10))
	assert.Equal(t, "curto", TruncateText("curto", 10))
	assert.Equal(t, "aquisi...", TruncateText("aquisição de material", 6))
}

func TestConvertPNCPIDToURL(t *testing.T) {
	assert.Equal(t, "18428888000123/2024/178", ConvertPNCPIDToURL("18428888000123-1-000178/2024"))
	assert.Equal(t, "sem-formato", ConvertPNCPIDToURL("sem-formato"))
	assert.Equal(t, "1-2-abc/2024", ConvertPNCPIDToURL("1-2-abc/2024"))
}

func TestParsePagination(t *testing.T) {
	page, size, err := ParsePagination("", "")
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	_, _, err = ParsePagination("0", "10")
	assert.Error(t, err)
	_, _, err = ParsePagination("1", "x")
	assert.Error(t, err)
}
