package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"gestalba/internal/models"
)

// VerificationRepository persists the per-email verification state the
// engine drives. One row per email (unique index); attempt counting and the
// block flip are single UPDATE statements so concurrent attempts cannot
// read-modify-write past the ceiling.
type VerificationRepository interface {
	GetByEmail(email string) (*models.UserVerification, error)
	Create(v *models.UserVerification) error
	DeleteByEmail(email string) error
	// IncrementAttempts adds one failed attempt and returns the new counter.
	IncrementAttempts(email string) (int, error)
	// RefreshCode installs a new code and expiry and counts the attempt that
	// triggered the refresh, atomically.
	RefreshCode(email, code string, expiresAt time.Time) error
	SetBlocked(email string, expiresAt time.Time) error
	// ClearBlock resets the record after an expired block: unblocked, zero
	// attempts, tightened ceiling, no block expiry.
	ClearBlock(email string, newMaxAttempts int) error
}

type verificationRepository struct {
	DB *sql.DB
}

func NewVerificationRepository(db *sql.DB) VerificationRepository {
	return &verificationRepository{DB: db}
}

func (r *verificationRepository) GetByEmail(email string) (*models.UserVerification, error) {
	const q = `
		SELECT id, email, code, code_expires_at, attempts, max_attempts,
		       blocked, blocked_expires_at, created_at
		FROM user_verifications
		WHERE email = $1
	`
	v := &models.UserVerification{}
	var blockedExpiresAt sql.NullTime
	err := r.DB.QueryRow(q, email).Scan(
		&v.ID, &v.Email, &v.Code, &v.CodeExpiresAt, &v.Attempts, &v.MaxAttempts,
		&v.Blocked, &blockedExpiresAt, &v.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("verification get: %w", err)
	}
	if blockedExpiresAt.Valid {
		t := blockedExpiresAt.Time
		v.BlockedExpiresAt = &t
	}
	return v, nil
}

func (r *verificationRepository) Create(v *models.UserVerification) error {
	const q = `
		INSERT INTO user_verifications (email, code, code_expires_at, attempts, max_attempts, blocked)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(q, v.Email, v.Code, v.CodeExpiresAt, v.Attempts, v.MaxAttempts).
		Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("verification create: %w", err)
	}
	return nil
}

func (r *verificationRepository) DeleteByEmail(email string) error {
	if _, err := r.DB.Exec(`DELETE FROM user_verifications WHERE email=$1`, email); err != nil {
		return fmt.Errorf("verification delete: %w", err)
	}
	return nil
}

func (r *verificationRepository) IncrementAttempts(email string) (int, error) {
	const q = `
		UPDATE user_verifications
		SET attempts = attempts + 1
		WHERE email = $1
		RETURNING attempts
	`
	var attempts int
	if err := r.DB.QueryRow(q, email).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("verification increment attempts: %w", err)
	}
	return attempts, nil
}

func (r *verificationRepository) RefreshCode(email, code string, expiresAt time.Time) error {
	const q = `
		UPDATE user_verifications
		SET code=$1, code_expires_at=$2, attempts = attempts + 1
		WHERE email = $3
	`
	if _, err := r.DB.Exec(q, code, expiresAt, email); err != nil {
		return fmt.Errorf("verification refresh code: %w", err)
	}
	return nil
}

func (r *verificationRepository) SetBlocked(email string, expiresAt time.Time) error {
	const q = `
		UPDATE user_verifications
		SET blocked=TRUE, blocked_expires_at=$1
		WHERE email = $2
	`
	if _, err := r.DB.Exec(q, expiresAt, email); err != nil {
		return fmt.Errorf("verification set blocked: %w", err)
	}
	return nil
}

func (r *verificationRepository) ClearBlock(email string, newMaxAttempts int) error {
	const q = `
		UPDATE user_verifications
		SET blocked=FALSE, attempts=0, max_attempts=$1, blocked_expires_at=NULL
		WHERE email = $2
	`
	if _, err := r.DB.Exec(q, newMaxAttempts, email); err != nil {
		return fmt.Errorf("verification clear block: %w", err)
	}
	return nil
}
