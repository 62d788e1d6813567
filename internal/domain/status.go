package domain

// Status is the outcome reported by the host for a single spec
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
	StatusPending Status = "pending"
)

// IssueStatuses are the outcomes that count against a run
var IssueStatuses = []Status{StatusError, StatusFailed, StatusPending}

// IsIssue reports whether s is one of the tracked issue outcomes
func (s Status) IsIssue() bool {
	for _, issue := range IssueStatuses {
		if s == issue {
			return true
		}
	}
	return false
}
