package domain

import "fmt"

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
	SubmissionStatusPlayed   SubmissionStatus = "played"
)

// submissionTransitions is the single source of truth for the moderation
// lifecycle. Rejected and played are terminal audit states.
var submissionTransitions = map[SubmissionStatus][]SubmissionStatus{
	SubmissionStatusPending:  {SubmissionStatusApproved, SubmissionStatusRejected},
	SubmissionStatusApproved: {SubmissionStatusPlayed},
}

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected, SubmissionStatusPlayed:
		return true
	}
	return false
}

func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	for _, allowed := range submissionTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func ParseSubmissionStatus(raw string) (SubmissionStatus, error) {
	status := SubmissionStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown submission status %q", raw)
	}

	return status, nil
}
