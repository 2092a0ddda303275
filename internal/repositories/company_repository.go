package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"gestalba/internal/models"
)

type CompanyRepository interface {
	Create(company *models.Company) error
	GetByCIF(cif string) (*models.Company, error)
	// GetByMemberEmail finds the company whose member list contains email.
	GetByMemberEmail(email string) (*models.Company, error)
	AddEmail(cif, email string) error
}

type companyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{DB: db}
}

const companyColumns = `
	id, COALESCE(boss,''), emails, COALESCE(name,''), cif,
	COALESCE(street,''), COALESCE(number,0), COALESCE(postal,''),
	COALESCE(city,''), COALESCE(province,''), created_at
`

func scanCompany(s interface{ Scan(...any) error }) (*models.Company, error) {
	c := &models.Company{}
	err := s.Scan(
		&c.ID, &c.Boss, pq.Array(&c.Emails), &c.Name, &c.CIF,
		&c.Address.Street, &c.Address.Number, &c.Address.Postal,
		&c.Address.City, &c.Address.Province, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *companyRepository) Create(company *models.Company) error {
	const q = `
		INSERT INTO companies (boss, emails, name, cif, street, number, postal, city, province)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(q,
		company.Boss, pq.Array(company.Emails), company.Name, company.CIF,
		company.Address.Street, company.Address.Number, company.Address.Postal,
		company.Address.City, company.Address.Province,
	).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("company create: %w", err)
	}
	return nil
}

func (r *companyRepository) GetByCIF(cif string) (*models.Company, error) {
	row := r.DB.QueryRow(`SELECT `+companyColumns+` FROM companies WHERE cif=$1`, cif)
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("company get: %w", err)
	}
	return c, nil
}

func (r *companyRepository) GetByMemberEmail(email string) (*models.Company, error) {
	row := r.DB.QueryRow(`
		SELECT `+companyColumns+` FROM companies WHERE $1 = ANY(emails)
	`, email)
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("company get by member: %w", err)
	}
	return c, nil
}

func (r *companyRepository) AddEmail(cif, email string) error {
	if _, err := r.DB.Exec(`
		UPDATE companies SET emails = array_append(emails, $1) WHERE cif=$2
	`, email, cif); err != nil {
		return fmt.Errorf("company add email: %w", err)
	}
	return nil
}
