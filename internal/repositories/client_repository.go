package repositories

import (
	"database/sql"
	"fmt"

	"gestalba/internal/models"
)

type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(userID, id int64) (*models.Client, error)
	GetByCIF(userID int64, cif string) (*models.Client, error)
	List(userID int64) ([]*models.Client, error)
	ListArchived(userID int64) ([]*models.Client, error)
	UpdateByCIF(client *models.Client) (bool, error)
	Archive(userID, id int64) (bool, error)
	Restore(userID, id int64) (bool, error)
	HardDelete(userID, id int64) (bool, error)
}

type clientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{DB: db}
}

const clientColumns = `
	id, user_id, COALESCE(name,''), cif,
	COALESCE(street,''), COALESCE(number,0), COALESCE(postal,''),
	COALESCE(city,''), COALESCE(province,''), created_at, deleted_at
`

func scanClient(s interface{ Scan(...any) error }) (*models.Client, error) {
	c := &models.Client{}
	var deletedAt sql.NullTime
	err := s.Scan(
		&c.ID, &c.UserID, &c.Name, &c.CIF,
		&c.Address.Street, &c.Address.Number, &c.Address.Postal,
		&c.Address.City, &c.Address.Province, &c.CreatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		c.DeletedAt = &t
	}
	return c, nil
}

func (r *clientRepository) Create(client *models.Client) error {
	const q = `
		INSERT INTO clients (user_id, name, cif, street, number, postal, city, province)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(q,
		client.UserID, client.Name, client.CIF,
		client.Address.Street, client.Address.Number, client.Address.Postal,
		client.Address.City, client.Address.Province,
	).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return fmt.Errorf("client create: %w", err)
	}
	return nil
}

func (r *clientRepository) GetByID(userID, id int64) (*models.Client, error) {
	row := r.DB.QueryRow(`
		SELECT `+clientColumns+` FROM clients
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL
	`, id, userID)
	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("client get: %w", err)
	}
	return c, nil
}

func (r *clientRepository) GetByCIF(userID int64, cif string) (*models.Client, error) {
	row := r.DB.QueryRow(`
		SELECT `+clientColumns+` FROM clients
		WHERE cif=$1 AND user_id=$2 AND deleted_at IS NULL
	`, cif, userID)
	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("client get by cif: %w", err)
	}
	return c, nil
}

func (r *clientRepository) list(userID int64, archived bool) ([]*models.Client, error) {
	cond := "deleted_at IS NULL"
	if archived {
		cond = "deleted_at IS NOT NULL"
	}
	rows, err := r.DB.Query(`
		SELECT `+clientColumns+` FROM clients
		WHERE user_id=$1 AND `+cond+`
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("client list: %w", err)
	}
	defer rows.Close()

	var out []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("client list scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clientRepository) List(userID int64) ([]*models.Client, error) {
	return r.list(userID, false)
}

func (r *clientRepository) ListArchived(userID int64) ([]*models.Client, error) {
	return r.list(userID, true)
}

// UpdateByCIF updates a client identified by (user, cif). Returns false when
// there is no matching live client.
func (r *clientRepository) UpdateByCIF(client *models.Client) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE clients
		SET name=$1, street=$2, number=$3, postal=$4, city=$5, province=$6
		WHERE cif=$7 AND user_id=$8 AND deleted_at IS NULL
	`,
		client.Name, client.Address.Street, client.Address.Number, client.Address.Postal,
		client.Address.City, client.Address.Province, client.CIF, client.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("client update: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *clientRepository) Archive(userID, id int64) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE clients SET deleted_at=NOW()
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("client archive: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *clientRepository) Restore(userID, id int64) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE clients SET deleted_at=NULL
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NOT NULL
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("client restore: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *clientRepository) HardDelete(userID, id int64) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM clients WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("client delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
