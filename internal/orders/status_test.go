package orders

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPaid, StatusShipped, true},
		{StatusShipped, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPaid, StatusCancelled, true},

		{StatusShipped, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusShipped, StatusPending, false},
		{StatusPending, StatusShipped, false},  // tidak boleh loncat
		{StatusPending, StatusCompleted, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPaid, false},
		{StatusPaid, StatusPending, false}, // tidak ada jalan mundur
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("delivered").Valid() {
		t.Error("unknown status should not be valid")
	}
}
