package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"gestalba/internal/models"
	"gestalba/internal/repositories"
	"gestalba/internal/utils"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyVerified = errors.New("user already verified")
	ErrUserBlocked     = errors.New("user blocked")
	ErrCodeExpired     = errors.New("code expired")
	ErrCodeInvalid     = errors.New("code invalid")
)

const (
	codeTTL            = 15 * time.Minute
	blockDuration      = 24 * time.Hour
	defaultMaxAttempts = 5
)

// VerifyOutcome distinguishes the non-error results of an attempt: the three
// cases that answer HTTP 200 with different messages.
type VerifyOutcome int

const (
	// OutcomeVerified: code matched, account verified, record deleted.
	OutcomeVerified VerifyOutcome = iota
	// OutcomeCodeSent: no record existed; a fresh one was created and its
	// code mailed. The caller should retry with that code.
	OutcomeCodeSent
	// OutcomeBlockCleared: an expired block was lifted and a fresh record
	// created with a tightened attempt ceiling.
	OutcomeBlockCleared
)

type VerificationService interface {
	// Attempt runs one verification attempt for email with the submitted
	// code. Exactly one of the sentinel errors above, or an outcome.
	Attempt(email, code string) (VerifyOutcome, error)
	// Issue creates (or replaces) the verification record for email and
	// mails the new code. Called once at registration.
	Issue(email string) error
}

type verificationService struct {
	users  repositories.UserRepository
	verifs repositories.VerificationRepository
	email  EmailService
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewVerificationService(
	users repositories.UserRepository,
	verifs repositories.VerificationRepository,
	email EmailService,
) VerificationService {
	return &verificationService{
		users:  users,
		verifs: verifs,
		email:  email,
		now:    time.Now,
		locks:  map[string]*sync.Mutex{},
	}
}

// lockFor serializes attempts per email so two concurrent attempts cannot
// both read a pre-threshold counter and overshoot maxAttempts.
func (s *verificationService) lockFor(email string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[email]
	if !ok {
		l = &sync.Mutex{}
		s.locks[email] = l
	}
	return l
}

// Attempt evaluates the rules in strict order; the first matching rule wins:
//
//  1. unknown account          -> ErrUserNotFound
//  2. already verified         -> ErrAlreadyVerified
//  3. no record                -> create + mail, OutcomeCodeSent
//  4. blocked, block active    -> ErrUserBlocked
//  5. blocked, block expired   -> clean slate (maxAttempts-1, floor 1), OutcomeBlockCleared
//  6. attempts >= maxAttempts  -> flip blocked for 24h, ErrUserBlocked
//  7. code expired             -> new code + mail, attempts+1, ErrCodeExpired
//  8. wrong code               -> attempts+1, ErrCodeInvalid
//  9. match                    -> verify account, delete record, OutcomeVerified
//
// Expiry is checked before equality: a correct code submitted late is
// "expired", not "verified".
func (s *verificationService) Attempt(email, code string) (VerifyOutcome, error) {
	l := s.lockFor(email)
	l.Lock()
	defer l.Unlock()

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}
	if user.Verified {
		return 0, ErrAlreadyVerified
	}

	v, err := s.verifs.GetByEmail(email)
	if err != nil {
		return 0, err
	}
	if v == nil {
		// Record can be missing if a registration half-failed or a cleared
		// block removed it. Start over.
		if err := s.issue(email, defaultMaxAttempts); err != nil {
			return 0, err
		}
		return OutcomeCodeSent, nil
	}

	now := s.now()

	if v.Blocked {
		if v.BlockedExpiresAt != nil && v.BlockedExpiresAt.Before(now) {
			newMax := v.MaxAttempts - 1
			if newMax < 1 {
				newMax = 1
			}
			if err := s.verifs.ClearBlock(email, newMax); err != nil {
				return 0, err
			}
			// Fresh record, tightened ceiling.
			if err := s.issue(email, newMax); err != nil {
				return 0, err
			}
			log.Printf("[verify] block expired, cleared: email=%s max_attempts=%d", email, newMax)
			return OutcomeBlockCleared, nil
		}
		return 0, ErrUserBlocked
	}

	if v.Attempts >= v.MaxAttempts {
		if err := s.verifs.SetBlocked(email, now.Add(blockDuration)); err != nil {
			return 0, err
		}
		log.Printf("[verify] attempts exhausted, blocking: email=%s", email)
		return 0, ErrUserBlocked
	}

	if v.CodeExpiresAt.Before(now) {
		newCode, err := utils.GenerateVerificationCode()
		if err != nil {
			return 0, err
		}
		if err := s.verifs.RefreshCode(email, newCode, now.Add(codeTTL)); err != nil {
			return 0, err
		}
		s.sendCode(email, newCode)
		return 0, ErrCodeExpired
	}

	if v.Code != code {
		if _, err := s.verifs.IncrementAttempts(email); err != nil {
			return 0, err
		}
		return 0, ErrCodeInvalid
	}

	if err := s.users.SetVerified(email); err != nil {
		return 0, err
	}
	if err := s.verifs.DeleteByEmail(email); err != nil {
		return 0, err
	}
	log.Printf("[verify] verified: email=%s", email)
	return OutcomeVerified, nil
}

func (s *verificationService) Issue(email string) error {
	l := s.lockFor(email)
	l.Lock()
	defer l.Unlock()
	return s.issue(email, defaultMaxAttempts)
}

// issue replaces any existing record for email with a fresh one and mails
// the code. A mail failure is logged, never returned: the record exists and
// a later attempt will re-send.
func (s *verificationService) issue(email string, maxAttempts int) error {
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return err
	}
	if err := s.verifs.DeleteByEmail(email); err != nil {
		return err
	}
	v := &models.UserVerification{
		Email:         email,
		Code:          code,
		CodeExpiresAt: s.now().Add(codeTTL),
		Attempts:      0,
		MaxAttempts:   maxAttempts,
	}
	if err := s.verifs.Create(v); err != nil {
		return err
	}
	s.sendCode(email, code)
	return nil
}

func (s *verificationService) sendCode(email, code string) {
	if err := s.email.SendVerificationCode(email, code); err != nil {
		log.Printf("[verify] warning: failed to send code to %s: %v", email, err)
	}
}
