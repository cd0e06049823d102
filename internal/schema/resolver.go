package schema

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// Sentinel messages surfaced to the end user inside MissingColumns.
// They are user-facing text, not structural errors, so they stay in
// the language of the export files.
const (
	MsgInvalidServiceType = "Tipo de servicio no válido"
	MsgNoColumns          = "No hay columnas para validar"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// stripMarks removes combining marks after NFD decomposition, so
// "EXPEDICIÓN" and "expedicion" normalize to the same form.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// NormalizeHeader reduces a header to its comparison form: diacritics
// stripped, upper-cased, internal whitespace runs collapsed, trimmed.
func NormalizeHeader(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = strings.ToUpper(out)
	out = whitespaceRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Resolve matches a required source column against the actual headers
// of a file. Exact match wins immediately; otherwise the first header
// whose normalized form equals the normalized required name wins.
// Returns ("", false) when nothing matches.
func Resolve(required string, available []string) (string, bool) {
	for _, name := range available {
		if name == required {
			return name, true
		}
	}
	want := NormalizeHeader(required)
	for _, name := range available {
		if NormalizeHeader(name) == want {
			return name, true
		}
	}
	return "", false
}

// ValidateColumns checks that every required column of the service's
// schema resolves against the file headers. An unknown service type
// and an empty header set both fail with a sentinel message.
func ValidateColumns(available []string, service domain.ServiceType) domain.ColumnValidation {
	s, err := Lookup(service)
	if err != nil {
		return domain.ColumnValidation{
			Valid:          false,
			MissingColumns: []string{MsgInvalidServiceType},
		}
	}
	if len(available) == 0 {
		return domain.ColumnValidation{
			Valid:          false,
			MissingColumns: []string{MsgNoColumns},
		}
	}

	var missing, found []string
	for _, col := range s.RequiredColumns() {
		if _, ok := Resolve(col, available); ok {
			found = append(found, col)
		} else {
			missing = append(missing, col)
		}
	}
	return domain.ColumnValidation{
		Valid:            len(missing) == 0,
		MissingColumns:   missing,
		AvailableColumns: found,
	}
}
