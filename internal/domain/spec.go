package domain

// Expectation is a single failed expectation attached to a spec result
type Expectation struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// SpecResult is the raw payload the host engine hands over when a spec finishes
type SpecResult struct {
	FullName           string        `json:"full_name"`   // Scope path plus description
	Description        string        `json:"description"` // Spec's own short name
	Status             Status        `json:"status"`
	FailedExpectations []Expectation `json:"failed_expectations"`
}
