package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"gestalba/internal/models"
)

type DeliveryNoteRepository interface {
	Create(note *models.DeliveryNote) error
	GetByID(userID, id int64) (*models.DeliveryNote, error)
	// GetDetail joins the note with its client and project.
	GetDetail(userID, id int64) (*models.DeliveryNoteDetail, error)
	List(userID int64) ([]*models.DeliveryNote, error)
	SetPDFURL(id int64, url string) error
	SetSignature(id int64, url string) error
	HardDelete(userID, id int64) (bool, error)
}

type deliveryNoteRepository struct {
	DB *sql.DB
}

func NewDeliveryNoteRepository(db *sql.DB) DeliveryNoteRepository {
	return &deliveryNoteRepository{DB: db}
}

const noteColumns = `
	id, user_id, client_id, project_id, format, entries,
	signed, COALESCE(signature_url,''), COALESCE(pdf_url,''), created_at
`

func scanNote(s interface{ Scan(...any) error }) (*models.DeliveryNote, error) {
	n := &models.DeliveryNote{}
	var entries []byte
	err := s.Scan(
		&n.ID, &n.UserID, &n.ClientID, &n.ProjectID, &n.Format, &entries,
		&n.Signed, &n.SignatureURL, &n.PDFURL, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		if err := json.Unmarshal(entries, &n.Entries); err != nil {
			return nil, fmt.Errorf("delivery note entries decode: %w", err)
		}
	}
	return n, nil
}

func (r *deliveryNoteRepository) Create(note *models.DeliveryNote) error {
	entries, err := json.Marshal(note.Entries)
	if err != nil {
		return fmt.Errorf("delivery note entries encode: %w", err)
	}
	const q = `
		INSERT INTO delivery_notes (user_id, client_id, project_id, format, entries, signed)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, created_at
	`
	err = r.DB.QueryRow(q, note.UserID, note.ClientID, note.ProjectID, note.Format, entries).
		Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return fmt.Errorf("delivery note create: %w", err)
	}
	return nil
}

func (r *deliveryNoteRepository) GetByID(userID, id int64) (*models.DeliveryNote, error) {
	row := r.DB.QueryRow(`
		SELECT `+noteColumns+` FROM delivery_notes WHERE id=$1 AND user_id=$2
	`, id, userID)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delivery note get: %w", err)
	}
	return n, nil
}

func (r *deliveryNoteRepository) GetDetail(userID, id int64) (*models.DeliveryNoteDetail, error) {
	note, err := r.GetByID(userID, id)
	if err != nil || note == nil {
		return nil, err
	}
	detail := &models.DeliveryNoteDetail{DeliveryNote: *note}

	clientRow := r.DB.QueryRow(`SELECT `+clientColumns+` FROM clients WHERE id=$1`, note.ClientID)
	if c, err := scanClient(clientRow); err == nil {
		detail.Client = c
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("delivery note client: %w", err)
	}

	projectRow := r.DB.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id=$1`, note.ProjectID)
	if p, err := scanProject(projectRow); err == nil {
		detail.Project = p
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("delivery note project: %w", err)
	}

	return detail, nil
}

func (r *deliveryNoteRepository) List(userID int64) ([]*models.DeliveryNote, error) {
	rows, err := r.DB.Query(`
		SELECT `+noteColumns+` FROM delivery_notes WHERE user_id=$1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("delivery note list: %w", err)
	}
	defer rows.Close()

	var out []*models.DeliveryNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("delivery note list scan: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *deliveryNoteRepository) SetPDFURL(id int64, url string) error {
	if _, err := r.DB.Exec(`UPDATE delivery_notes SET pdf_url=$1 WHERE id=$2`, url, id); err != nil {
		return fmt.Errorf("delivery note set pdf url: %w", err)
	}
	return nil
}

func (r *deliveryNoteRepository) SetSignature(id int64, url string) error {
	if _, err := r.DB.Exec(`
		UPDATE delivery_notes SET signature_url=$1, signed=TRUE WHERE id=$2
	`, url, id); err != nil {
		return fmt.Errorf("delivery note set signature: %w", err)
	}
	return nil
}

func (r *deliveryNoteRepository) HardDelete(userID, id int64) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM delivery_notes WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delivery note delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
