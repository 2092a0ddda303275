package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gestalba/internal/models"
	"gestalba/internal/repositories"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrNotVerified   = errors.New("user not verified")
	ErrWrongPassword = errors.New("wrong password")
)

type UserService interface {
	Register(user *models.User, plainPassword string) error
	Login(email, password string) (*models.User, string, error)
	CompleteProfile(email, name, surname, nif string) error
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	verification VerificationService
	auth         AuthService
}

func NewUserService(repo repositories.UserRepository, verification VerificationService, auth AuthService) UserService {
	return &userService{repo: repo, verification: verification, auth: auth}
}

// Register creates the account unverified and issues its verification
// record exactly once. The code mail is sent from the verification service.
func (s *userService) Register(user *models.User, plainPassword string) error {
	if strings.TrimSpace(plainPassword) == "" {
		return fmt.Errorf("password is required")
	}
	hash, err := s.auth.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.Role = models.RoleUser
	user.Verified = false

	if err := s.repo.Create(user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}

	if err := s.verification.Issue(user.Email); err != nil {
		// The account exists; a later verification attempt re-issues the
		// code, so registration itself still succeeds.
		log.Printf("[user][register] warning: issue verification for %s: %v", user.Email, err)
	}

	log.Printf("[user][register] created: email=%s id=%d", user.Email, user.ID)
	return nil
}

func (s *userService) Login(email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}
	if !user.Verified {
		return nil, "", ErrNotVerified
	}
	if !s.auth.ComparePassword(password, user.PasswordHash) {
		return nil, "", ErrWrongPassword
	}
	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) CompleteProfile(email, name, surname, nif string) error {
	ok, err := s.repo.UpdateProfile(email, name, surname, nif)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) GetByID(id int64) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}
