package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModerationTransitions(t *testing.T) {
	for _, from := range []ModerationStatus{ModerationPending, ModerationApproved, ModerationRejected} {
		for _, to := range []ModerationStatus{ModerationPending, ModerationApproved, ModerationRejected} {
			got := from.CanTransition(to)
			require.Equal(t, from != to, got, "from=%s to=%s", from, to)
		}
	}

	require.False(t, ModerationPending.CanTransition("Published"))
	require.False(t, ModerationStatus("Bogus").CanTransition(ModerationApproved))
}

func TestApplicationTransitions(t *testing.T) {
	cases := []struct {
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{ApplicationPending, ApplicationApproved, true},
		{ApplicationPending, ApplicationRejected, true},
		{ApplicationPending, ApplicationPending, false},
		{ApplicationApproved, ApplicationRejected, true},
		{ApplicationApproved, ApplicationPending, false},
		{ApplicationApproved, ApplicationApproved, false},
		{ApplicationRejected, ApplicationPending, false},
		{ApplicationRejected, ApplicationApproved, false},
		{ApplicationRejected, ApplicationRejected, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, tc.from.CanTransition(tc.to), "from=%s to=%s", tc.from, tc.to)
	}
}

func TestOperationalStatusToggled(t *testing.T) {
	require.Equal(t, JobClosed, JobOpen.Toggled())
	require.Equal(t, JobOpen, JobClosed.Toggled())
	require.True(t, JobOpen.Valid())
	require.False(t, OperationalStatus("Paused").Valid())
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleAdmin.Valid())
	require.True(t, RoleEmployer.Valid())
	require.True(t, RoleUser.Valid())
	require.False(t, Role("superuser").Valid())
}
