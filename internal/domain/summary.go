package domain

// FailedCase is a failed, errored or skipped case kept in the run summary
type FailedCase struct {
	Classname string   `json:"classname"`
	Name      string   `json:"name"`
	Status    Status   `json:"status"`
	Time      string   `json:"time"`
	Stacks    []string `json:"stacks"`
	Resolved  bool     `json:"resolved,omitempty"` // Toggled from the failures viewer
}

// RunMeta contains metadata about a reported session
type RunMeta struct {
	RunID       string `json:"run_id"`
	SuiteName   string `json:"suite_name"`
	PackageName string `json:"package_name"`
	Hostname    string `json:"hostname"`
	Timestamp   string `json:"timestamp"`
	Tests       int    `json:"tests"`
	Errors      int    `json:"errors"`
	Failures    int    `json:"failures"`
	Skipped     int    `json:"skipped"`
	Time        string `json:"time"`
	Duration    string `json:"duration"`
	ReportPath  string `json:"report_path,omitempty"`
	ReportError string `json:"report_error,omitempty"`
	Success     bool   `json:"success"`
}

// RunSummary is the persisted digest of the last session
type RunSummary struct {
	Meta    RunMeta      `json:"meta"`
	Details []FailedCase `json:"details"`
}
