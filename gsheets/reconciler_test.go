// ABOUTME: Tests for row-to-contact field reconciliation
// ABOUTME: Covers locale variants, accent stripping, email validation, and fallbacks
package gsheets

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablerohq/tablero/models"
)

func TestReconcileSpanishHeaders(t *testing.T) {
	headers := []string{"Nombre", "Correo Electrónico", "Teléfono"}
	row := []string{"Ana Pérez", "ana@example.com", "555-1234"}

	rec := Reconcile(headers, row, models.ContactTypeClient)

	assert.Equal(t, "Ana Pérez", rec.Name)
	assert.Equal(t, "ana@example.com", rec.Email)
	assert.Equal(t, "555-1234", rec.Phone)
	assert.Equal(t, "", rec.Company)
	assert.Equal(t, models.ContactTypeClient, rec.Type)
}

func TestReconcileEnglishHeaders(t *testing.T) {
	headers := []string{"Name", "E-mail", "Phone", "Company"}
	row := []string{"John Smith", "john@acme.com", "555-9999", "Acme Corp"}

	rec := Reconcile(headers, row, models.ContactTypeInterested)

	assert.Equal(t, "John Smith", rec.Name)
	assert.Equal(t, "john@acme.com", rec.Email)
	assert.Equal(t, "555-9999", rec.Phone)
	assert.Equal(t, "Acme Corp", rec.Company)
}

func TestReconcileUnderscoredHeaders(t *testing.T) {
	headers := []string{"nombre_completo", "correo_electronico", "numero_de_telefono", "compañía"}
	row := []string{"Luis", "luis@example.com", "123", "Globex"}

	rec := Reconcile(headers, row, models.ContactTypeToContact)

	assert.Equal(t, "Luis", rec.Name)
	assert.Equal(t, "luis@example.com", rec.Email)
	assert.Equal(t, "123", rec.Phone)
	assert.Equal(t, "Globex", rec.Company)
}

func TestReconcileUppercaseAccentedHeaders(t *testing.T) {
	headers := []string{"NOMBRE COMPLETO", "CORREO ELECTRÓNICO", "NÚMERO DE TELÉFONO", "COMPAÑÍA"}
	row := []string{"Eva", "eva@example.com", "456", "Initech"}

	rec := Reconcile(headers, row, models.ContactTypeClient)

	assert.Equal(t, "Eva", rec.Name)
	assert.Equal(t, "eva@example.com", rec.Email)
	assert.Equal(t, "456", rec.Phone)
	assert.Equal(t, "Initech", rec.Company)
}

func TestReconcileInvalidEmailDiscarded(t *testing.T) {
	headers := []string{"Nombre", "Email"}
	row := []string{"Ana", "not-an-email"}

	rec := Reconcile(headers, row, models.ContactTypeClient)

	// An unparseable email is treated as not found, never an error
	assert.Equal(t, "", rec.Email)
	assert.Equal(t, "Ana", rec.Name)
}

func TestReconcileEmailShapes(t *testing.T) {
	cases := map[string]bool{
		"ana@example.com":  true,
		"a.b+c@sub.dom.mx": true,
		"missing-at.com":   false,
		"two@@example.com": false,
		"spaces in@a.com":  false,
		"no-tld@example":   false,
		"@example.com":     false,
		"ana@.com":         false,
	}

	for email, valid := range cases {
		rec := Reconcile([]string{"Email"}, []string{email}, models.ContactTypeClient)
		if valid {
			assert.Equal(t, email, rec.Email, "expected %q to be kept", email)
		} else {
			assert.Equal(t, "", rec.Email, "expected %q to be discarded", email)
		}
	}
}

func TestReconcileNameFallback(t *testing.T) {
	headers := []string{"Fecha", "Monto"}
	row := []string{"2024-01-01", "100"}

	rec := Reconcile(headers, row, models.ContactTypeToContact)

	// Never an empty name: storage requires one
	assert.Equal(t, "Sin nombre", rec.Name)
}

func TestReconcileRaggedRow(t *testing.T) {
	headers := []string{"Nombre", "Email", "Teléfono"}
	row := []string{"Ana"}

	rec := Reconcile(headers, row, models.ContactTypeClient)

	assert.Equal(t, "Ana", rec.Name)
	assert.Equal(t, "", rec.Email)
	assert.Equal(t, "", rec.Phone)
}

func TestReconcilePriorityOrder(t *testing.T) {
	// "Nombre" outranks "cliente" when both columns are present
	headers := []string{"cliente", "Nombre"}
	row := []string{"Acme SA", "Ana Pérez"}

	rec := Reconcile(headers, row, models.ContactTypeClient)
	assert.Equal(t, "Ana Pérez", rec.Name)
}

func TestReconcileNotesEmbedOriginalRow(t *testing.T) {
	headers := []string{"Nombre", "Extra"}
	row := []string{"Ana", "dato suelto"}

	rec := Reconcile(headers, row, models.ContactTypeClient)

	require.True(t, strings.HasPrefix(rec.Notes, "Importado desde Google Sheets"))

	// The tail of the notes is a JSON dump of the header-to-cell mapping
	idx := strings.Index(rec.Notes, "{")
	require.GreaterOrEqual(t, idx, 0)

	var dump map[string]string
	require.NoError(t, json.Unmarshal([]byte(rec.Notes[idx:]), &dump))
	assert.Equal(t, "Ana", dump["Nombre"])
	assert.Equal(t, "dato suelto", dump["Extra"])
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Correo Electrónico": "correo_electronico",
		"NÚMERO DE TELÉFONO": "numero_de_telefono",
		"Name":               "name",
		"two  spaces":        "two_spaces",
		"compañía":           "compania",
	}
	for in, want := range cases {
		if got := normalizeKey(in); got != want {
			t.Errorf("normalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
