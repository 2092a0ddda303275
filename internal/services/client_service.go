package services

import (
	"errors"

	"gestalba/internal/models"
	"gestalba/internal/repositories"
)

var (
	ErrClientExists   = errors.New("client with that CIF already exists")
	ErrClientNotFound = errors.New("client not found")
)

type ClientService interface {
	Create(client *models.Client) error
	UpdateByCIF(client *models.Client) error
	List(userID int64) ([]*models.Client, error)
	ListArchived(userID int64) ([]*models.Client, error)
	Get(userID, id int64) (*models.Client, error)
	Archive(userID, id int64) error
	Restore(userID, id int64) error
	HardDelete(userID, id int64) error
}

type clientService struct {
	repo repositories.ClientRepository
}

func NewClientService(repo repositories.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) Create(client *models.Client) error {
	existing, err := s.repo.GetByCIF(client.UserID, client.CIF)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrClientExists
	}
	return s.repo.Create(client)
}

func (s *clientService) UpdateByCIF(client *models.Client) error {
	ok, err := s.repo.UpdateByCIF(client)
	if err != nil {
		return err
	}
	if !ok {
		return ErrClientNotFound
	}
	return nil
}

func (s *clientService) List(userID int64) ([]*models.Client, error) {
	return s.repo.List(userID)
}

func (s *clientService) ListArchived(userID int64) ([]*models.Client, error) {
	return s.repo.ListArchived(userID)
}

func (s *clientService) Get(userID, id int64) (*models.Client, error) {
	client, err := s.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

func (s *clientService) Archive(userID, id int64) error {
	return s.toggle(s.repo.Archive, userID, id)
}

func (s *clientService) Restore(userID, id int64) error {
	return s.toggle(s.repo.Restore, userID, id)
}

func (s *clientService) HardDelete(userID, id int64) error {
	return s.toggle(s.repo.HardDelete, userID, id)
}

func (s *clientService) toggle(op func(int64, int64) (bool, error), userID, id int64) error {
	ok, err := op(userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrClientNotFound
	}
	return nil
}
