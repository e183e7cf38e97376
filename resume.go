package gatekeeper

// ResumeStatus is a state in the resume review lifecycle.
type ResumeStatus string

const (
	// ResumePending is the initial state. Owner-initiated edits and
	// deletes are legal only here.
	ResumePending ResumeStatus = "PENDING"

	// ResumeReviewing means HR has started reviewing the application.
	ResumeReviewing ResumeStatus = "REVIEWING"

	// ResumeApproved is terminal.
	ResumeApproved ResumeStatus = "APPROVED"

	// ResumeRejected is terminal.
	ResumeRejected ResumeStatus = "REJECTED"
)

// resumeTransitions holds the legal HR-initiated transitions. The machine is
// one-directional: nothing transitions back to PENDING.
var resumeTransitions = map[ResumeStatus][]ResumeStatus{
	ResumePending:   {ResumeReviewing, ResumeApproved, ResumeRejected},
	ResumeReviewing: {ResumeApproved, ResumeRejected},
}

// CanTransitionResume reports whether a resume may move from one status to
// another.
func CanTransitionResume(from, to ResumeStatus) bool {
	for _, next := range resumeTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s ResumeStatus) Terminal() bool {
	return len(resumeTransitions[s]) == 0
}
