package services

import (
	"database/sql"
	"errors"
	"log"

	"gestalba/internal/models"
	"gestalba/internal/repositories"
)

type LogoService interface {
	// Attach records an uploaded logo file and links it to the user.
	Attach(userID int64, filename, url string) (*models.Logo, error)
}

type logoService struct {
	logos repositories.LogoRepository
	users repositories.UserRepository
}

func NewLogoService(logos repositories.LogoRepository, users repositories.UserRepository) LogoService {
	return &logoService{logos: logos, users: users}
}

func (s *logoService) Attach(userID int64, filename, url string) (*models.Logo, error) {
	logo := &models.Logo{Filename: filename, URL: url}
	if err := s.logos.Create(logo); err != nil {
		return nil, err
	}
	if err := s.users.SetLogo(userID, logo.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	log.Printf("[logo] %s attached to user %d", logo.Filename, userID)
	return logo, nil
}
