package models

import "time"

const (
	FormatHours     = "hours"
	FormatMaterials = "materials"
	FormatMixed     = "mixed"
)

// DeliveryNoteEntry is one line of an albarán: either worked hours for a
// person or a quantity of some material.
type DeliveryNoteEntry struct {
	Person   string  `json:"person,omitempty"`
	Hours    float64 `json:"hours,omitempty"`
	Material string  `json:"material,omitempty"`
	Quantity float64 `json:"quantity,omitempty"`
}

// DeliveryNote (albarán) records delivered work/materials for a project.
// Once signed it becomes immutable and cannot be deleted. PDFURL and
// SignatureURL point at the pinned IPFS copies.
type DeliveryNote struct {
	ID           int64               `json:"id"`
	UserID       int64               `json:"user_id"`
	ClientID     int64               `json:"client_id"`
	ProjectID    int64               `json:"project_id"`
	Format       string              `json:"format"`
	Entries      []DeliveryNoteEntry `json:"entries"`
	Signed       bool                `json:"signed"`
	SignatureURL string              `json:"signature_url,omitempty"`
	PDFURL       string              `json:"pdf_url,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// DeliveryNoteDetail is a note joined with its client and project, used by
// the single-note endpoint and the PDF renderer.
type DeliveryNoteDetail struct {
	DeliveryNote
	Client  *Client  `json:"client,omitempty"`
	Project *Project `json:"project,omitempty"`
}
