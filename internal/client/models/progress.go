package models

// ProgressStatus is the server-reported state of a generation run.
type ProgressStatus string

const (
	ProgressRunning   ProgressStatus = "running"
	ProgressCompleted ProgressStatus = "completed"
	ProgressError     ProgressStatus = "error"
)

// ProgressUpdate is one message from the stage-4 progress stream.
type ProgressUpdate struct {
	// Progress is the overall completion percentage, 0..100.
	Progress int `json:"progress"`

	// Step is a human-readable description of the current step.
	Step string `json:"step"`

	// Phase names the coarse generation phase the step belongs to.
	Phase string `json:"phase"`

	// Eta is the server's remaining-time estimate in seconds.
	Eta int `json:"eta"`

	// Status is running until the run finishes or fails.
	Status ProgressStatus `json:"status"`

	// Error carries the failure description when Status is "error".
	Error string `json:"error,omitempty"`
}
