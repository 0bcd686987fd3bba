package model

// Statistics number of calendar entries per duty kind.
// Value type: Inc returns an updated copy.
type Statistics struct {
	OnCall       int `json:"on_call"`
	PostCallRest int `json:"post_call_rest"`
	Surgery      int `json:"surgery"`
	Clinic       int `json:"clinic"`
	Other        int `json:"other"`
}

// Inc returns s with the counter for kind incremented.
func (s Statistics) Inc(kind DutyKind) Statistics {
	switch kind {
	case DutyOnCall:
		s.OnCall++
	case DutyPostCallRest:
		s.PostCallRest++
	case DutySurgery:
		s.Surgery++
	case DutyClinic:
		s.Clinic++
	default:
		s.Other++
	}
	return s
}

// Get counter for kind
func (s Statistics) Get(kind DutyKind) int {
	switch kind {
	case DutyOnCall:
		return s.OnCall
	case DutyPostCallRest:
		return s.PostCallRest
	case DutySurgery:
		return s.Surgery
	case DutyClinic:
		return s.Clinic
	default:
		return s.Other
	}
}

// Total sum over all kinds
func (s Statistics) Total() int {
	return s.OnCall + s.PostCallRest + s.Surgery + s.Clinic + s.Other
}
