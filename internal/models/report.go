package models

import "time"

// ReportState is a state of the report generation state machine.
type ReportState string

const (
	ReportStateIdle          ReportState = "idle"
	ReportStateSubmitted     ReportState = "submitted"
	ReportStatePolling       ReportState = "polling"
	ReportStateArtifactReady ReportState = "artifact_ready"
	ReportStateFailed        ReportState = "failed"
)

// Terminal reports whether no further transition can happen from s.
func (s ReportState) Terminal() bool {
	return s == ReportStateArtifactReady || s == ReportStateFailed
}

// ReportStatusPending is the only status value that keeps the poll loop running.
const ReportStatusPending = "pending"

// ReportTask is the backend response to a report job submission.
type ReportTask struct {
	TaskID string `json:"task_id"`
}

// Artifact is the final output of a report job: either the document itself
// or a location the document can be downloaded from.
type Artifact struct {
	ContentType string `json:"content_type,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Location    string `json:"location,omitempty"`
	Data        []byte `json:"-"`
}

// ReportPoll is the outcome of one check of a report job. Exactly one of
// Artifact and Status is meaningful: a non-nil Artifact wins.
type ReportPoll struct {
	Artifact *Artifact
	Status   string
	Location string // download location announced by a JSON status body
}

// ReportSnapshot describes the poller for status displays.
type ReportSnapshot struct {
	State     ReportState `json:"state"`
	TaskID    string      `json:"task_id,omitempty"`
	Polls     int         `json:"polls"`
	Waits     int         `json:"waits"`
	Error     string      `json:"error,omitempty"`
	StartedAt time.Time   `json:"started_at,omitempty"`
	Artifact  *Artifact   `json:"artifact,omitempty"`
}

// ReportEvent is published when a report job reaches a terminal state.
type ReportEvent struct {
	EventID   string      `json:"event_id"`
	TaskID    string      `json:"task_id"`
	State     ReportState `json:"state"`
	Polls     int         `json:"polls"`
	Error     string      `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"`
}
