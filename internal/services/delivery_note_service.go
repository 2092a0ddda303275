package services

import (
	"errors"
	"fmt"
	"log"

	"gestalba/internal/models"
	"gestalba/internal/pdf"
	"gestalba/internal/repositories"
	"gestalba/internal/utils"
)

var (
	ErrNoteNotFound = errors.New("delivery note not found")
	ErrNoteSigned   = errors.New("delivery note already signed")
)

type DeliveryNoteService interface {
	Create(note *models.DeliveryNote) error
	List(userID int64) ([]*models.DeliveryNote, error)
	Get(userID, id int64) (*models.DeliveryNoteDetail, error)
	// PDF returns the pinned PDF URL for the note, rendering and pinning it
	// first when missing. created tells the handler whether to redirect
	// (already pinned) or answer 201.
	PDF(userID, id int64) (url string, created bool, err error)
	// Sign pins the signature image and marks the note signed.
	Sign(userID, id int64, signature []byte) (string, error)
	Delete(userID, id int64) error
}

type deliveryNoteService struct {
	repo     repositories.DeliveryNoteRepository
	clients  repositories.ClientRepository
	projects repositories.ProjectRepository
	pdfGen   pdf.Generator
	pinata   *utils.PinataClient
}

func NewDeliveryNoteService(
	repo repositories.DeliveryNoteRepository,
	clients repositories.ClientRepository,
	projects repositories.ProjectRepository,
	pdfGen pdf.Generator,
	pinata *utils.PinataClient,
) DeliveryNoteService {
	return &deliveryNoteService{
		repo:     repo,
		clients:  clients,
		projects: projects,
		pdfGen:   pdfGen,
		pinata:   pinata,
	}
}

func (s *deliveryNoteService) Create(note *models.DeliveryNote) error {
	client, err := s.clients.GetByID(note.UserID, note.ClientID)
	if err != nil {
		return err
	}
	if client == nil {
		return ErrClientNotFound
	}
	project, err := s.projects.GetByID(note.UserID, note.ProjectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	return s.repo.Create(note)
}

func (s *deliveryNoteService) List(userID int64) ([]*models.DeliveryNote, error) {
	return s.repo.List(userID)
}

func (s *deliveryNoteService) Get(userID, id int64) (*models.DeliveryNoteDetail, error) {
	detail, err := s.repo.GetDetail(userID, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrNoteNotFound
	}
	return detail, nil
}

func (s *deliveryNoteService) PDF(userID, id int64) (string, bool, error) {
	detail, err := s.repo.GetDetail(userID, id)
	if err != nil {
		return "", false, err
	}
	if detail == nil {
		return "", false, ErrNoteNotFound
	}
	if detail.PDFURL != "" {
		return detail.PDFURL, false, nil
	}

	data, err := s.pdfGen.RenderDeliveryNote(detail)
	if err != nil {
		return "", false, err
	}
	url, err := s.pinata.PinFile(data, fmt.Sprintf("albaran_%d.pdf", id))
	if err != nil {
		return "", false, fmt.Errorf("pin delivery note pdf: %w", err)
	}
	if err := s.repo.SetPDFURL(id, url); err != nil {
		return "", false, err
	}
	log.Printf("[note][pdf] pinned: id=%d url=%s", id, url)
	return url, true, nil
}

func (s *deliveryNoteService) Sign(userID, id int64, signature []byte) (string, error) {
	note, err := s.repo.GetByID(userID, id)
	if err != nil {
		return "", err
	}
	if note == nil {
		return "", ErrNoteNotFound
	}

	url, err := s.pinata.PinFile(signature, fmt.Sprintf("firma_%d.png", id))
	if err != nil {
		return "", fmt.Errorf("pin signature: %w", err)
	}
	if err := s.repo.SetSignature(id, url); err != nil {
		return "", err
	}
	log.Printf("[note][sign] signed: id=%d", id)
	return url, nil
}

func (s *deliveryNoteService) Delete(userID, id int64) error {
	note, err := s.repo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}
	if note.Signed || note.SignatureURL != "" {
		return ErrNoteSigned
	}
	ok, err := s.repo.HardDelete(userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoteNotFound
	}
	return nil
}
