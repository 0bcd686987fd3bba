package roster

import (
	"reflect"
	"testing"
)

func TestDedupLabels(t *testing.T) {
	got := DedupLabels([]string{"NÖBET", "NÖBET", "NÖBET"})
	want := []string{"NÖBET", "NÖBET_1", "NÖBET_2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DedupLabels = %v, want %v", got, want)
	}
	for _, l := range got {
		if DisplayLabel(l) != "NÖBET" {
			t.Errorf("DisplayLabel(%q) = %q", l, DisplayLabel(l))
		}
	}
}

func TestDedupLabels_MixedAndBlank(t *testing.T) {
	got := DedupLabels([]string{"TARİH", "", "AMELİYAT", "NÖBET", "AMELİYAT", ""})
	want := []string{"TARİH", "Unnamed: 1", "AMELİYAT", "NÖBET", "AMELİYAT_1", "Unnamed: 5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DedupLabels = %v, want %v", got, want)
	}
}

func TestDedupLabels_AvoidsExistingSuffix(t *testing.T) {
	got := DedupLabels([]string{"A", "A_1", "A"})
	want := []string{"A", "A_1", "A_2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DedupLabels = %v, want %v", got, want)
	}
}

func TestDisplayLabel_KeepsInnerNumbers(t *testing.T) {
	if got := DisplayLabel("AMELİYAT 2"); got != "AMELİYAT 2" {
		t.Errorf("got %q", got)
	}
}
