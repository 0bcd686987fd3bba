package roster

import (
	"reflect"
	"testing"
)

var testKeywords = ColumnKeywords{
	OnCallTeam: []string{"nöbet", "acil", "icap"},
	PostCall:   "ertesi",
	OnCall:     "nöbet",
	Surgery:    "ameliyat",
}

func TestClassifyColumns(t *testing.T) {
	cols := []string{
		"NÖBET", "NÖBET_1", "NÖBET ERTESİ", "İCAP", "ACİL",
		"AMELİYAT 3", "AMELİYAT", "AMELİYAT 1", "NÖBET AMELİYAT", "AMELİYAT 10", "POLİKLİNİK 1",
	}
	g := ClassifyColumns(cols, testKeywords)

	wantTeam := []string{"NÖBET", "NÖBET_1", "İCAP", "ACİL", "NÖBET AMELİYAT"}
	if !reflect.DeepEqual(g.DutyTeam, wantTeam) {
		t.Errorf("DutyTeam = %v, want %v", g.DutyTeam, wantTeam)
	}
	wantBays := []string{"AMELİYAT 1", "AMELİYAT 3", "AMELİYAT 10", "AMELİYAT"}
	if !reflect.DeepEqual(g.SurgeryBays, wantBays) {
		t.Errorf("SurgeryBays = %v, want %v", g.SurgeryBays, wantBays)
	}
}

func TestClassifyColumns_Empty(t *testing.T) {
	g := ClassifyColumns([]string{"SERVİS", "POLİKLİNİK"}, testKeywords)
	if len(g.DutyTeam) != 0 || len(g.SurgeryBays) != 0 {
		t.Errorf("expected empty groups, got %+v", g)
	}
}

func TestFirstNumber(t *testing.T) {
	if n, ok := FirstNumber("POLİKLİNİK 12 (B3)"); !ok || n != 12 {
		t.Errorf("got %d %v", n, ok)
	}
	if _, ok := FirstNumber("SERVİS"); ok {
		t.Error("no digits must report false")
	}
}
