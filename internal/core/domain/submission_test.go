package domain

import "testing"

func TestSubmissionStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to SubmissionStatus
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusRejected, StatusPending, true},
		{StatusApproved, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusPending, StatusPending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestSubmissionStatus_Active(t *testing.T) {
	if !StatusPending.Active() {
		t.Errorf("pending should be active")
	}
	if !StatusApproved.Active() {
		t.Errorf("approved should be active")
	}
	if StatusRejected.Active() {
		t.Errorf("rejected should not be active")
	}
}

func TestUser_DisplayName(t *testing.T) {
	u := &User{UID: "u1", Name: "Alice", Email: "a@example.com"}
	if u.DisplayName() != "Alice" {
		t.Errorf("expected name, got %q", u.DisplayName())
	}
	u.Name = ""
	if u.DisplayName() != "a@example.com" {
		t.Errorf("expected email fallback, got %q", u.DisplayName())
	}
	u.Email = ""
	if u.DisplayName() != "u1" {
		t.Errorf("expected uid fallback, got %q", u.DisplayName())
	}
}
