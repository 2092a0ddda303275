package services

import (
	"errors"

	"gestalba/internal/models"
	"gestalba/internal/repositories"
)

var (
	ErrProjectExists   = errors.New("project with that code already exists")
	ErrProjectNotFound = errors.New("project not found")
)

type ProjectService interface {
	Create(project *models.Project) error
	Update(project *models.Project) error
	List(userID int64) ([]*models.Project, error)
	ListArchived(userID int64) ([]*models.Project, error)
	Get(userID, id int64) (*models.Project, error)
	Archive(userID, id int64) error
	Restore(userID, id int64) error
	HardDelete(userID, id int64) error
}

type projectService struct {
	repo    repositories.ProjectRepository
	clients repositories.ClientRepository
}

func NewProjectService(repo repositories.ProjectRepository, clients repositories.ClientRepository) ProjectService {
	return &projectService{repo: repo, clients: clients}
}

func (s *projectService) Create(project *models.Project) error {
	client, err := s.clients.GetByID(project.UserID, project.ClientID)
	if err != nil {
		return err
	}
	if client == nil {
		return ErrClientNotFound
	}

	existing, err := s.repo.GetByCode(project.UserID, project.ClientID, project.ProjectCode)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrProjectExists
	}
	return s.repo.Create(project)
}

func (s *projectService) Update(project *models.Project) error {
	ok, err := s.repo.Update(project)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProjectNotFound
	}
	return nil
}

func (s *projectService) List(userID int64) ([]*models.Project, error) {
	return s.repo.List(userID)
}

func (s *projectService) ListArchived(userID int64) ([]*models.Project, error) {
	return s.repo.ListArchived(userID)
}

func (s *projectService) Get(userID, id int64) (*models.Project, error) {
	project, err := s.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *projectService) Archive(userID, id int64) error {
	return s.toggle(s.repo.Archive, userID, id)
}

func (s *projectService) Restore(userID, id int64) error {
	return s.toggle(s.repo.Restore, userID, id)
}

func (s *projectService) HardDelete(userID, id int64) error {
	return s.toggle(s.repo.HardDelete, userID, id)
}

func (s *projectService) toggle(op func(int64, int64) (bool, error), userID, id int64) error {
	ok, err := op(userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProjectNotFound
	}
	return nil
}
