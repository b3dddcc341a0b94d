package models

// ModerationStatus is the admin-controlled approval state of a job posting.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "Pending"
	ModerationApproved ModerationStatus = "Approved"
	ModerationRejected ModerationStatus = "Rejected"
)

// Valid reports whether the value is a known moderation state.
func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}

// CanTransition reports whether an admin may move a posting to the target
// state. Admins may move freely between the three states; a transition to the
// current state is rejected so each accepted change maps to exactly one
// employer notification.
func (s ModerationStatus) CanTransition(to ModerationStatus) bool {
	return s.Valid() && to.Valid() && s != to
}

// OperationalStatus is the employer-controlled open/closed axis of a posting,
// independent from moderation.
type OperationalStatus string

const (
	JobOpen   OperationalStatus = "Open"
	JobClosed OperationalStatus = "Closed"
)

// Valid reports whether the value is a known operational state.
func (s OperationalStatus) Valid() bool {
	return s == JobOpen || s == JobClosed
}

// Toggled returns the opposite operational state.
func (s OperationalStatus) Toggled() OperationalStatus {
	if s == JobClosed {
		return JobOpen
	}
	return JobClosed
}

// ApplicationStatus tracks a job seeker's application outcome.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// Valid reports whether the value is a known application state.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// applicationTransitions enumerates the permitted application status changes.
// Rejected is terminal; an already approved application may still be rejected.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:  {ApplicationApproved, ApplicationRejected},
	ApplicationApproved: {ApplicationRejected},
	ApplicationRejected: {},
}

// CanTransition reports whether the status change is permitted.
func (s ApplicationStatus) CanTransition(to ApplicationStatus) bool {
	for _, next := range applicationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
