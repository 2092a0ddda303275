package repositories

import (
	"database/sql"
	"fmt"

	"gestalba/internal/models"
)

type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(userID, id int64) (*models.Project, error)
	GetByCode(userID, clientID int64, code string) (*models.Project, error)
	List(userID int64) ([]*models.Project, error)
	ListArchived(userID int64) ([]*models.Project, error)
	Update(project *models.Project) (bool, error)
	Archive(userID, id int64) (bool, error)
	Restore(userID, id int64) (bool, error)
	HardDelete(userID, id int64) (bool, error)
}

type projectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) ProjectRepository {
	return &projectRepository{DB: db}
}

const projectColumns = `
	id, user_id, client_id, COALESCE(name,''), COALESCE(project_code,''),
	COALESCE(street,''), COALESCE(number,0), COALESCE(postal,''),
	COALESCE(city,''), COALESCE(province,''), created_at, deleted_at
`

func scanProject(s interface{ Scan(...any) error }) (*models.Project, error) {
	p := &models.Project{}
	var deletedAt sql.NullTime
	err := s.Scan(
		&p.ID, &p.UserID, &p.ClientID, &p.Name, &p.ProjectCode,
		&p.Address.Street, &p.Address.Number, &p.Address.Postal,
		&p.Address.City, &p.Address.Province, &p.CreatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		p.DeletedAt = &t
	}
	return p, nil
}

func (r *projectRepository) Create(project *models.Project) error {
	const q = `
		INSERT INTO projects (user_id, client_id, name, project_code, street, number, postal, city, province)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(q,
		project.UserID, project.ClientID, project.Name, project.ProjectCode,
		project.Address.Street, project.Address.Number, project.Address.Postal,
		project.Address.City, project.Address.Province,
	).Scan(&project.ID, &project.CreatedAt)
	if err != nil {
		return fmt.Errorf("project create: %w", err)
	}
	return nil
}

func (r *projectRepository) GetByID(userID, id int64) (*models.Project, error) {
	row := r.DB.QueryRow(`
		SELECT `+projectColumns+` FROM projects
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL
	`, id, userID)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("project get: %w", err)
	}
	return p, nil
}

func (r *projectRepository) GetByCode(userID, clientID int64, code string) (*models.Project, error) {
	row := r.DB.QueryRow(`
		SELECT `+projectColumns+` FROM projects
		WHERE user_id=$1 AND client_id=$2 AND project_code=$3 AND deleted_at IS NULL
	`, userID, clientID, code)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("project get by code: %w", err)
	}
	return p, nil
}

func (r *projectRepository) list(userID int64, archived bool) ([]*models.Project, error) {
	cond := "deleted_at IS NULL"
	if archived {
		cond = "deleted_at IS NOT NULL"
	}
	rows, err := r.DB.Query(`
		SELECT `+projectColumns+` FROM projects
		WHERE user_id=$1 AND `+cond+`
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("project list: %w", err)
	}
	defer rows.Close()

	var out []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("project list scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectRepository) List(userID int64) ([]*models.Project, error) {
	return r.list(userID, false)
}

func (r *projectRepository) ListArchived(userID int64) ([]*models.Project, error) {
	return r.list(userID, true)
}

func (r *projectRepository) Update(project *models.Project) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE projects
		SET name=$1, project_code=$2, street=$3, number=$4, postal=$5, city=$6, province=$7
		WHERE id=$8 AND user_id=$9 AND deleted_at IS NULL
	`,
		project.Name, project.ProjectCode,
		project.Address.Street, project.Address.Number, project.Address.Postal,
		project.Address.City, project.Address.Province,
		project.ID, project.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("project update: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *projectRepository) Archive(userID, id int64) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE projects SET deleted_at=NOW()
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("project archive: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *projectRepository) Restore(userID, id int64) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE projects SET deleted_at=NULL
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NOT NULL
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("project restore: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *projectRepository) HardDelete(userID, id int64) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM projects WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("project delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
