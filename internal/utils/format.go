package utils

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// dateLayouts - форматы дат, которые встречаются в ответах PNCP и в форме.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// modalidades - названия способов закупки по коду.
var modalidades = map[string]string{
	"1":  "Concorrência",
	"2":  "Tomada de Preços",
	"3":  "Convite",
	"4":  "Concurso",
	"5":  "Leilão",
	"6":  "Pregão",
	"7":  "Dispensa de Licitação",
	"8":  "Inexigibilidade de Licitação",
	"12": "Credenciamento",
}

// FormatNumber форматирует число по-бразильски с двумя знаками: 1.234,56
func FormatNumber(value float64) string {
	return ptBR.Sprint(number.Decimal(value, number.Scale(2)))
}

// FormatCurrency форматирует сумму в реалах: R$ 1.234,56
func FormatCurrency(value float64) string {
	return "R$ " + FormatNumber(value)
}

// ParseCurrency разбирает сумму, введённую вручную.
// Остаются только цифры и запятые, первая запятая считается десятичным разделителем.
// Пустое или неразборчивое значение возвращает false: граница не применяется.
func ParseCurrency(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)
	if i := strings.IndexByte(cleaned, ','); i >= 0 {
		cleaned = cleaned[:i]
	}
	if cleaned == "" {
		return 0, false
	}

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// ParseDate разбирает дату в формате YYYYMMDD или в одном из свободных форматов.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if len(value) == 8 && isDigits(value) {
		parsed, err := time.ParseInLocation("20060102", value, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatDate приводит дату к виду dd/mm/yyyy.
func FormatDate(value string) string {
	if value == "" {
		return "N/A"
	}
	parsed, ok := ParseDate(value)
	if !ok {
		return value
	}
	return parsed.Format("02/01/2006")
}

// CompactDate приводит дату из формы (YYYY-MM-DD) к формату API (YYYYMMDD).
func CompactDate(value string) string {
	if !strings.Contains(value, "-") {
		return value
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return parsed.Format("20060102")
}

// ModalidadeName возвращает название способа закупки по коду.
func ModalidadeName(code string) string {
	if name, ok := modalidades[code]; ok {
		return name
	}
	return code
}

// TruncateText обрезает текст до maxLength символов.
func TruncateText(text string, maxLength int) string {
	if text == "" {
		return "N/A"
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}

// ConvertPNCPIDToURL переводит номер 18428888000123-1-000178/2024 в путь 18428888000123/2024/178.
func ConvertPNCPIDToURL(id string) string {
	if !strings.Contains(id, "-") || !strings.Contains(id, "/") {
		return id
	}

	parts := strings.Split(id, "-")
	if len(parts) < 3 {
		return id
	}
	sequencialYear := strings.Split(parts[2], "/")
	if len(sequencialYear) != 2 {
		return id
	}
	sequencial, err := strconv.Atoi(sequencialYear[0])
	if err != nil {
		return id
	}
	return parts[0] + "/" + sequencialYear[1] + "/" + strconv.Itoa(sequencial)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
