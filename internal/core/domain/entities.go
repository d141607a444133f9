package domain

import "time"

// Client is a consulting customer. Deleting a client is blocked while
// any project still references it.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project is a consulting engagement for a client. Project names are
// unique across the whole system. Deleting a project cascades to its
// statuses and transcriptions.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClientID  string    `json:"client_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectWithClient is the read shape used by the pipeline and the
// aggregation engine, which both need the client name for context.
type ProjectWithClient struct {
	Project
	ClientName string `json:"client_name"`
}

// Transcription is one uploaded meeting recording or document. RawText
// and ProcessedAt stay nil until the pipeline has extracted text; a row
// with FileKind KindUnknown never gains text.
type Transcription struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	FilePath    string     `json:"file_path"`
	FileName    string     `json:"file_name"`
	FileKind    FileKind   `json:"file_kind"`
	FileSize    int64      `json:"file_size"`
	RawText     *string    `json:"raw_text,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Processed reports whether the pipeline already extracted text for
// this transcription.
func (t *Transcription) Processed() bool {
	return t.RawText != nil
}

// StatusFields is the canonical five-field status shape. The boolean
// fields are tri-state: nil means "not mentioned / unknown".
type StatusFields struct {
	IsOnScope    *bool   `json:"is_on_scope"`
	IsOnTime     *bool   `json:"is_on_time"`
	IsOnBudget   *bool   `json:"is_on_budget"`
	NextDelivery *string `json:"next_delivery"`
	Risks        *string `json:"risks"`
}

// ProjectStatus is one immutable status snapshot for a project. The
// current status of a project is the row with the greatest UpdatedAt;
// updates are new rows, never in-place edits.
type ProjectStatus struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	StatusFields
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}
