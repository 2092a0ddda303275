package services

import (
	"errors"
	"log"

	"gestalba/internal/models"
	"gestalba/internal/repositories"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrAlreadyMember   = errors.New("user already registered in this company")
	ErrCIFTaken        = errors.New("company CIF already registered")
)

type CompanyService interface {
	// CreateOrJoin registers email under the company with that CIF,
	// creating the company first when it does not exist. created reports
	// which of the two happened.
	CreateOrJoin(email string, company *models.Company) (created bool, err error)
	AddUser(cif, email string) error
	MyCompany(email string) (*models.Company, error)
}

type companyService struct {
	repo repositories.CompanyRepository
}

func NewCompanyService(repo repositories.CompanyRepository) CompanyService {
	return &companyService{repo: repo}
}

func (s *companyService) CreateOrJoin(email string, company *models.Company) (bool, error) {
	existing, err := s.repo.GetByCIF(company.CIF)
	if err != nil {
		return false, err
	}
	if existing != nil {
		for _, e := range existing.Emails {
			if e == email {
				return false, ErrAlreadyMember
			}
		}
		if err := s.repo.AddEmail(company.CIF, email); err != nil {
			return false, err
		}
		log.Printf("[company] user %s joined %s", email, existing.Name)
		return false, nil
	}

	company.Boss = email
	company.Emails = []string{email}
	if err := s.repo.Create(company); err != nil {
		if repositories.IsUniqueViolation(err) {
			return false, ErrCIFTaken
		}
		return false, err
	}
	log.Printf("[company] created %s (cif=%s) by %s", company.Name, company.CIF, email)
	return true, nil
}

func (s *companyService) AddUser(cif, email string) error {
	company, err := s.repo.GetByCIF(cif)
	if err != nil {
		return err
	}
	if company == nil {
		return ErrCompanyNotFound
	}
	for _, e := range company.Emails {
		if e == email {
			return ErrAlreadyMember
		}
	}
	return s.repo.AddEmail(cif, email)
}

func (s *companyService) MyCompany(email string) (*models.Company, error) {
	company, err := s.repo.GetByMemberEmail(email)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}
