package domain

import (
	"time"

	"resume-renderer/internal/model"

	"github.com/google/uuid"
)

type ExportStatus string

const (
	ExportPending   ExportStatus = "pending"
	ExportRunning   ExportStatus = "running"
	ExportCompleted ExportStatus = "completed"
	ExportFailed    ExportStatus = "failed"
)

// ExportJob tracks one PDF export. Either ResumeID points at a stored
// snapshot or Request carries the snapshot inline.
type ExportJob struct {
	ID        uuid.UUID              `json:"id"`
	ResumeID  *uuid.UUID             `json:"resume_id,omitempty"`
	Template  string                 `json:"template"`
	Status    ExportStatus           `json:"status"`
	HTMLPath  string                 `json:"html_path,omitempty"`
	PDFPath   string                 `json:"pdf_path,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
	Request   *model.RenderRequest   `json:"-"`
}
