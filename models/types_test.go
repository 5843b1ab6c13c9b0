// ABOUTME: Tests for model validation helpers and sheet accessors
// ABOUTME: Covers enum validation and header/row slicing of sheet grids
package models

import "testing"

func TestValidContactType(t *testing.T) {
	valid := []string{ContactTypeClient, ContactTypeInterested, ContactTypeToContact}
	for _, v := range valid {
		if !ValidContactType(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}

	invalid := []string{"", "client", "Clients", "PROSPECT"}
	for _, v := range invalid {
		if ValidContactType(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func TestValidContactStatus(t *testing.T) {
	for _, v := range []string{ContactStatusActive, ContactStatusPending, ContactStatusUrgent} {
		if !ValidContactStatus(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}
	if ValidContactStatus("active") {
		t.Error("status values are case sensitive")
	}
}

func TestValidPlanType(t *testing.T) {
	if !ValidPlanType(PlanTypeWar) || !ValidPlanType(PlanTypeRegen) {
		t.Error("WAR and REGEN must be valid plan types")
	}
	if ValidPlanType("PEACE") {
		t.Error("unknown plan type accepted")
	}
}

func TestSheetHeadersAndRows(t *testing.T) {
	empty := &ConnectedSheet{}
	if empty.Headers() != nil || empty.Rows() != nil {
		t.Error("empty sheet should have nil headers and rows")
	}

	headerOnly := &ConnectedSheet{Data: [][]string{{"Nombre", "Email"}}}
	if got := headerOnly.Headers(); len(got) != 2 {
		t.Errorf("expected 2 headers, got %d", len(got))
	}
	if headerOnly.Rows() != nil {
		t.Error("header-only sheet should have no data rows")
	}

	full := &ConnectedSheet{Data: [][]string{
		{"Nombre", "Email"},
		{"Ana", "ana@example.com"},
		{"Luis"}, // ragged rows are allowed
	}}
	if got := full.Rows(); len(got) != 2 {
		t.Errorf("expected 2 data rows, got %d", len(got))
	}
}
