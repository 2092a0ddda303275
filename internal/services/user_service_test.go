package services

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestalba/internal/models"
)

type fakeVerification struct {
	issued []string
	err    error
}

func (f *fakeVerification) Attempt(email, code string) (VerifyOutcome, error) {
	return OutcomeVerified, nil
}

func (f *fakeVerification) Issue(email string) error {
	if f.err != nil {
		return f.err
	}
	f.issued = append(f.issued, email)
	return nil
}

// dupUserRepo simulates the unique index on users.email.
type dupUserRepo struct {
	*fakeUserRepo
}

func (r *dupUserRepo) Create(user *models.User) error {
	if _, taken := r.users[user.Email]; taken {
		return &pq.Error{Code: "23505"}
	}
	return r.fakeUserRepo.Create(user)
}

func newTestUserService(t *testing.T) (UserService, *fakeUserRepo, *fakeVerification) {
	t.Helper()
	repo := newFakeUserRepo()
	verification := &fakeVerification{}
	svc := NewUserService(&dupUserRepo{repo}, verification, NewAuthService("test-secret"))
	return svc, repo, verification
}

func TestRegisterHashesAndIssuesCode(t *testing.T) {
	svc, repo, verification := newTestUserService(t)

	user := &models.User{Email: "ana@example.com"}
	require.NoError(t, svc.Register(user, "supersecret"))

	stored := repo.users["ana@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
	assert.False(t, stored.Verified)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.Equal(t, []string{"ana@example.com"}, verification.issued)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	require.NoError(t, svc.Register(&models.User{Email: "ana@example.com"}, "supersecret"))
	err := svc.Register(&models.User{Email: "ana@example.com"}, "othersecret")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterEmptyPassword(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	err := svc.Register(&models.User{Email: "ana@example.com"}, "   ")
	assert.Error(t, err)
}

func TestLoginFlow(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	require.NoError(t, svc.Register(&models.User{Email: "ana@example.com"}, "supersecret"))

	// Not verified yet.
	_, _, err := svc.Login("ana@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrNotVerified)

	repo.users["ana@example.com"].Verified = true

	_, _, err = svc.Login("ana@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, _, err = svc.Login("nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user, token, err := svc.Login("ana@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestCompleteProfile(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	require.NoError(t, svc.Register(&models.User{Email: "ana@example.com"}, "supersecret"))

	require.NoError(t, svc.CompleteProfile("ana@example.com", "Ana", "García", "12345678Z"))
	stored := repo.users["ana@example.com"]
	assert.Equal(t, "Ana", stored.Name)
	assert.Equal(t, "García", stored.Surname)
	assert.Equal(t, "12345678Z", stored.NIF)

	assert.ErrorIs(t, svc.CompleteProfile("ghost@example.com", "A", "B", "C"), ErrUserNotFound)
}
