// Package coerce holds the per-field coercion functions that turn raw
// export cells into canonical values. Every function is total: bad
// input degrades to a safe default instead of an error, because the
// regulatory exports routinely ship incomplete rows and aggregate
// correctness matters more than per-cell strictness.
package coerce

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayFirstDate  = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
	yearFirstDate = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
)

// fallbackLayouts are tried, in order, for dates that match neither of
// the two regular layouts.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02.01.2006",
	"2 January 2006",
	"Jan 2, 2006",
}

// FormatDate normalizes a date cell to zero-padded DD-MM-YYYY.
// Day-first and year-first layouts with "-" or "/" separators are
// reordered directly; anything else is handed to a generic parser.
// Blank input yields "", and unrecognized input passes through
// unchanged rather than failing the row.
func FormatDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if m := dayFirstDate.FindStringSubmatch(s); m != nil {
		return joinDate(m[1], m[2], m[3])
	}
	if m := yearFirstDate.FindStringSubmatch(s); m != nil {
		return joinDate(m[3], m[2], m[1])
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02-01-2006")
		}
	}
	return s
}

// joinDate assembles DD-MM-YYYY from already-validated digit groups.
func joinDate(day, month, year string) string {
	d, _ := strconv.Atoi(day)
	m, _ := strconv.Atoi(month)
	return fmt.Sprintf("%02d-%02d-%s", d, m, year)
}

// UsageClass casts a usage-class cell to its integer code. Non-numeric
// or blank input yields 0.
func UsageClass(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// meterVocabulary is the exact (trimmed, upper-cased) meter-state
// vocabulary of the water exports.
var meterVocabulary = map[string]int{
	"INSTALADO":    1,
	"NO INSTALADO": 0,
	"RETIRADO":     0,
}

// MeterStatus converts a meter-state cell to the binary meter flag.
// Outside the exact vocabulary, "INSTALADO" without a "NO" anywhere in
// the value means installed, and "NO INSTALADO"/"RETIRADO" as
// substrings mean absent. Any other non-empty value coerces to 1: the
// exports only write something in this column when a meter exists.
// Blank input coerces to 0.
func MeterStatus(raw string) int {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}
	if v, ok := meterVocabulary[s]; ok {
		return v
	}
	if strings.Contains(s, "NO INSTALADO") || strings.Contains(s, "RETIRADO") {
		return 0
	}
	if strings.Contains(s, "INSTALADO") && !strings.Contains(s, "NO") {
		return 1
	}
	return 1
}

// AforoFlag converts the sewage "billed by aforo" cell to 0/1.
// Anything outside the affirmative vocabulary, including blank, is 0.
func AforoFlag(raw string) int {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SI", "SÍ", "S", "1":
		return 1
	}
	return 0
}

var currencyRunes = strings.NewReplacer("$", "", "€", "", " ", "", " ", "", "\t", "")

// ParseNumber parses a locale-variant numeric or currency cell.
// Currency symbols and whitespace are stripped first, then the
// decimal/thousands separators are disambiguated:
//
//	both "," and "." present: the later one is the decimal separator
//	("1,234.56" and "1.234,56" both parse to 1234.56);
//	only "," present: a final group of at most two digits makes the
//	comma a decimal separator ("12,5" -> 12.5), otherwise commas are
//	thousands separators ("1,234" -> 1234).
//
// Blank input and parse failures yield 0.
func ParseNumber(raw string) float64 {
	s := currencyRunes.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastDot > lastComma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastComma >= 0:
		if len(s)-lastComma-1 <= 2 {
			head := strings.ReplaceAll(s[:lastComma], ",", "")
			s = head + "." + s[lastComma+1:]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
