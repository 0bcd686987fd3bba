package model

import "testing"

func TestStatistics_Inc(t *testing.T) {
	var s Statistics
	s2 := s.Inc(DutySurgery).Inc(DutySurgery).Inc(DutyOnCall).Inc(DutyKind("unknown"))

	if s.Total() != 0 {
		t.Errorf("Inc must not mutate the receiver, total = %d", s.Total())
	}
	if s2.Get(DutySurgery) != 2 || s2.Get(DutyOnCall) != 1 || s2.Get(DutyOther) != 1 {
		t.Errorf("unexpected counts: %+v", s2)
	}
	if s2.Total() != 4 {
		t.Errorf("Total = %d, want 4", s2.Total())
	}
}

func TestDutyKind_Label(t *testing.T) {
	for _, k := range DutyKinds {
		if k.Label() == "" || k.Label() == string(k) {
			t.Errorf("kind %s has no display label", k)
		}
	}
}
