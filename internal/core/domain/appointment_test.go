package domain

import "testing"

func TestAppointmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{AppointmentPending, AppointmentConfirmed, true},
		{AppointmentPending, AppointmentCancelled, true},
		{AppointmentPending, AppointmentInProgress, false},
		{AppointmentPending, AppointmentCompleted, false},
		{AppointmentConfirmed, AppointmentInProgress, true},
		{AppointmentConfirmed, AppointmentCancelled, true},
		{AppointmentConfirmed, AppointmentCompleted, false},
		{AppointmentInProgress, AppointmentCompleted, true},
		{AppointmentInProgress, AppointmentCancelled, false},
		{AppointmentCompleted, AppointmentCancelled, false},
		{AppointmentCancelled, AppointmentConfirmed, false},
		{AppointmentCompleted, AppointmentPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
