// ABOUTME: Maps arbitrary sheet rows onto fixed contact fields by header name
// ABOUTME: Accent-insensitive matching across known English and Spanish spellings
package gsheets

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// noNameFallback is what a reconciled row is called when no cell looks like a
// name. Downstream storage requires a non-empty name, so this literal must
// survive as-is.
const noNameFallback = "Sin nombre"

const importNotesHeader = "Importado desde Google Sheets\n\nDatos originales:\n"

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Candidate header keys per logical field, in priority order. Keys are in
// normalized form; headers are normalized the same way before lookup, so one
// entry covers every casing, accent, and underscore variant of a spelling.
var (
	nameKeys    = []string{"nombre", "nombre_completo", "name", "full_name", "fullname", "client", "cliente"}
	emailKeys   = []string{"email", "correo", "correo_electronico", "e-mail"}
	phoneKeys   = []string{"telefono", "tel", "phone", "numero", "numero_de_telefono"}
	companyKeys = []string{"empresa", "company", "compania", "organization"}
)

// Reconciled is a sheet row mapped onto the fixed contact fields, plus an
// audit trail of the original row for the contact's notes.
type Reconciled struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Type    string
	Notes   string
}

// Reconcile guesses which cell of row holds the name, email, phone, and
// company by matching normalized headers against the candidate tables.
// Unmatched fields come back empty, except the name, which falls back to a
// placeholder. An email that does not look like local@domain.tld is treated
// as not found. contactType is carried through unchanged as the target
// bucket.
func Reconcile(headers, row []string, contactType string) Reconciled {
	original, normalized := rowMaps(headers, row)

	rec := Reconciled{
		Name:    findValue(normalized, nameKeys),
		Email:   findValue(normalized, emailKeys),
		Phone:   findValue(normalized, phoneKeys),
		Company: findValue(normalized, companyKeys),
		Type:    contactType,
	}

	if rec.Name == "" {
		rec.Name = noNameFallback
	}
	if rec.Email != "" && !emailShape.MatchString(rec.Email) {
		rec.Email = ""
	}

	rec.Notes = auditNotes(original)

	return rec
}

// rowMaps indexes the row's cells by header, once under the header as
// written (for the audit trail) and once under its normalized form (for
// matching). Cells past the end of a ragged row map to "".
func rowMaps(headers, row []string) (original, normalized map[string]string) {
	original = make(map[string]string, len(headers))
	normalized = make(map[string]string, len(headers))
	for i, header := range headers {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		original[header] = cell
		normalized[normalizeKey(header)] = cell
	}
	return original, normalized
}

// findValue probes each candidate key in priority order; the first non-empty
// hit wins.
func findValue(data map[string]string, candidates []string) string {
	for _, key := range candidates {
		if v, ok := data[key]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// normalizeKey lowercases, turns whitespace runs into underscores, and strips
// diacritics, so "Correo Electrónico" and "correo_electronico" collide.
func normalizeKey(s string) string {
	s = strings.ToLower(s)
	s = whitespaceRun.ReplaceAllString(s, "_")

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return s
}

// auditNotes embeds the full header-to-cell mapping in the notes so an
// imported contact stays traceable to its source row.
func auditNotes(data map[string]string) string {
	dump, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return importNotesHeader
	}
	return importNotesHeader + string(dump)
}
