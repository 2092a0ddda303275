package repositories

import (
	"database/sql"
	"fmt"

	"gestalba/internal/models"
)

type LogoRepository interface {
	Create(logo *models.Logo) error
}

type logoRepository struct {
	DB *sql.DB
}

func NewLogoRepository(db *sql.DB) LogoRepository {
	return &logoRepository{DB: db}
}

func (r *logoRepository) Create(logo *models.Logo) error {
	const q = `
		INSERT INTO logos (filename, url)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q, logo.Filename, logo.URL).Scan(&logo.ID, &logo.CreatedAt); err != nil {
		return fmt.Errorf("logo create: %w", err)
	}
	return nil
}
