package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestalba/internal/models"
)

// ---- in-memory fakes ----

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) UpdateProfile(email, name, surname, nif string) (bool, error) {
	u, ok := r.users[email]
	if !ok {
		return false, nil
	}
	u.Name, u.Surname, u.NIF = name, surname, nif
	return true, nil
}

func (r *fakeUserRepo) SetVerified(email string) error {
	u, ok := r.users[email]
	if !ok {
		return errors.New("no such user")
	}
	u.Verified = true
	now := time.Now()
	u.VerifiedAt = &now
	return nil
}

func (r *fakeUserRepo) SetLogo(userID, logoID int64) error { return nil }

type fakeVerifRepo struct {
	records map[string]*models.UserVerification
}

func newFakeVerifRepo() *fakeVerifRepo {
	return &fakeVerifRepo{records: map[string]*models.UserVerification{}}
}

func (r *fakeVerifRepo) GetByEmail(email string) (*models.UserVerification, error) {
	v, ok := r.records[email]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVerifRepo) Create(v *models.UserVerification) error {
	cp := *v
	r.records[v.Email] = &cp
	return nil
}

func (r *fakeVerifRepo) DeleteByEmail(email string) error {
	delete(r.records, email)
	return nil
}

func (r *fakeVerifRepo) IncrementAttempts(email string) (int, error) {
	v, ok := r.records[email]
	if !ok {
		return 0, errors.New("no record")
	}
	v.Attempts++
	return v.Attempts, nil
}

func (r *fakeVerifRepo) RefreshCode(email, code string, expiresAt time.Time) error {
	v, ok := r.records[email]
	if !ok {
		return errors.New("no record")
	}
	v.Code = code
	v.CodeExpiresAt = expiresAt
	v.Attempts++
	return nil
}

func (r *fakeVerifRepo) SetBlocked(email string, expiresAt time.Time) error {
	v, ok := r.records[email]
	if !ok {
		return errors.New("no record")
	}
	v.Blocked = true
	v.BlockedExpiresAt = &expiresAt
	return nil
}

func (r *fakeVerifRepo) ClearBlock(email string, newMaxAttempts int) error {
	v, ok := r.records[email]
	if !ok {
		return errors.New("no record")
	}
	v.Blocked = false
	v.BlockedExpiresAt = nil
	v.Attempts = 0
	v.MaxAttempts = newMaxAttempts
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendVerificationCode(to, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, code)
	return nil
}

// ---- harness ----

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestVerification(t *testing.T) (*verificationService, *fakeUserRepo, *fakeVerifRepo, *fakeMailer) {
	t.Helper()
	users := newFakeUserRepo()
	verifs := newFakeVerifRepo()
	mailer := &fakeMailer{}
	svc := NewVerificationService(users, verifs, mailer).(*verificationService)
	svc.now = func() time.Time { return testNow }
	return svc, users, verifs, mailer
}

func addUser(users *fakeUserRepo, email string, verified bool) {
	users.users[email] = &models.User{ID: int64(len(users.users) + 1), Email: email, Verified: verified}
}

func addRecord(verifs *fakeVerifRepo, v models.UserVerification) {
	cp := v
	verifs.records[v.Email] = &cp
}

// ---- tests ----

func TestAttemptUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestVerification(t)

	_, err := svc.Attempt("ghost@example.com", "123456")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAttemptAlreadyVerified(t *testing.T) {
	svc, users, _, _ := newTestVerification(t)
	addUser(users, "done@example.com", true)

	_, err := svc.Attempt("done@example.com", "123456")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestAttemptNoRecordCreatesAndMails(t *testing.T) {
	svc, users, verifs, mailer := newTestVerification(t)
	addUser(users, "new@example.com", false)

	outcome, err := svc.Attempt("new@example.com", "000000")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCodeSent, outcome)

	v := verifs.records["new@example.com"]
	require.NotNil(t, v)
	assert.Equal(t, 0, v.Attempts)
	assert.Equal(t, 5, v.MaxAttempts)
	assert.Equal(t, testNow.Add(15*time.Minute), v.CodeExpiresAt)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, v.Code, mailer.sent[0])
}

func TestAttemptBlockedActive(t *testing.T) {
	svc, users, verifs, _ := newTestVerification(t)
	addUser(users, "jail@example.com", false)
	until := testNow.Add(time.Hour)
	addRecord(verifs, models.UserVerification{
		Email: "jail@example.com", Code: "123456",
		CodeExpiresAt: testNow.Add(10 * time.Minute),
		Blocked:       true, BlockedExpiresAt: &until,
		MaxAttempts: 5,
	})

	_, err := svc.Attempt("jail@example.com", "123456")
	assert.ErrorIs(t, err, ErrUserBlocked)
}

func TestAttemptBlockExpiringExactlyNowStillBlocked(t *testing.T) {
	svc, users, verifs, _ := newTestVerification(t)
	addUser(users, "edge@example.com", false)
	until := testNow
	addRecord(verifs, models.UserVerification{
		Email: "edge@example.com", Code: "123456",
		CodeExpiresAt: testNow.Add(10 * time.Minute),
		Blocked:       true, BlockedExpiresAt: &until,
		MaxAttempts: 5,
	})

	_, err := svc.Attempt("edge@example.com", "123456")
	assert.ErrorIs(t, err, ErrUserBlocked)
}

func TestAttemptExpiredBlockClearsAndTightens(t *testing.T) {
	svc, users, verifs, mailer := newTestVerification(t)
	addUser(users, "back@example.com", false)
	until := testNow.Add(-time.Minute)
	addRecord(verifs, models.UserVerification{
		Email: "back@example.com", Code: "123456",
		CodeExpiresAt: testNow.Add(-time.Hour),
		Attempts:      5, MaxAttempts: 5,
		Blocked: true, BlockedExpiresAt: &until,
	})

	outcome, err := svc.Attempt("back@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, OutcomeBlockCleared, outcome)

	v := verifs.records["back@example.com"]
	require.NotNil(t, v)
	assert.False(t, v.Blocked)
	assert.Equal(t, 0, v.Attempts)
	assert.Equal(t, 4, v.MaxAttempts)
	assert.Len(t, mailer.sent, 1)
}

func TestAttemptTighteningFloorIsOne(t *testing.T) {
	svc, users, verifs, _ := newTestVerification(t)
	addUser(users, "floor@example.com", false)
	until := testNow.Add(-time.Minute)
	addRecord(verifs, models.UserVerification{
		Email: "floor@example.com", Code: "123456",
		CodeExpiresAt: testNow.Add(-time.Hour),
		Attempts:      1, MaxAttempts: 1,
		Blocked: true, BlockedExpiresAt: &until,
	})

	outcome, err := svc.Attempt("floor@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, OutcomeBlockCleared, outcome)
	assert.Equal(t, 1, verifs.records["floor@example.com"].MaxAttempts)
}

func TestAttemptCeilingBlocksForTwentyFourHours(t *testing.T) {
	svc, users, verifs, _ := newTestVerification(t)
	addUser(users, "limit@example.com", false)
	addRecord(verifs, models.UserVerification{
		Email: "limit@example.com", Code: "123456",
		CodeExpiresAt: testNow.Add(10 * time.Minute),
		Attempts:      5, MaxAttempts: 5,
	})

	_, err := svc.Attempt("limit@example.com", "123456")
	assert.ErrorIs(t, err, ErrUserBlocked)

	v := verifs.records["limit@example.com"]
	require.True(t, v.Blocked)
	require.NotNil(t, v.BlockedExpiresAt)
	assert.Equal(t, testNow.Add(24*time.Hour), *v.BlockedExpiresAt)
}

func TestAttemptExpiredCodeRefreshesEvenWhenCorrect(t *testing.T) {
	svc, users, verifs, mailer := newTestVerification(t)
	addUser(users, "late@example.com", false)
	addRecord(verifs, models.UserVerification{
		Email: "late@example.com", Code: "123456",
		CodeExpiresAt: testNow.Add(-time.Second),
		Attempts:      1, MaxAttempts: 5,
	})

	// The submitted code matches, but expiry is checked first.
	_, err := svc.Attempt("late@example.com", "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)

	v := verifs.records["late@example.com"]
	assert.NotEqual(t, "123456", v.Code)
	assert.Equal(t, 2, v.Attempts)
	assert.Equal(t, testNow.Add(15*time.Minute), v.CodeExpiresAt)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, v.Code, mailer.sent[0])
}

func TestAttemptWrongCodeCountsAttempt(t *testing.T) {
	svc, users, verifs, _ := newTestVerification(t)
	addUser(users, "typo@example.com", false)
	addRecord(verifs, models.UserVerification{
		Email: "typo@example.com", Code: "123456",
		CodeExpiresAt: testNow.Add(10 * time.Minute),
		Attempts:      0, MaxAttempts: 5,
	})

	_, err := svc.Attempt("typo@example.com", "654321")
	assert.ErrorIs(t, err, ErrCodeInvalid)
	assert.Equal(t, 1, verifs.records["typo@example.com"].Attempts)
}

func TestAttemptMatchVerifiesAndDeletesRecord(t *testing.T) {
	svc, users, verifs, _ := newTestVerification(t)
	addUser(users, "ok@example.com", false)
	addRecord(verifs, models.UserVerification{
		Email: "ok@example.com", Code: "123456",
		CodeExpiresAt: testNow.Add(10 * time.Minute),
		Attempts:      2, MaxAttempts: 5,
	})

	outcome, err := svc.Attempt("ok@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, OutcomeVerified, outcome)
	assert.True(t, users.users["ok@example.com"].Verified)
	assert.Nil(t, verifs.records["ok@example.com"])

	// A second attempt on the now-verified account is a conflict.
	_, err = svc.Attempt("ok@example.com", "123456")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestAttemptWrongCodesUntilBlock(t *testing.T) {
	svc, users, verifs, _ := newTestVerification(t)
	addUser(users, "brute@example.com", false)
	addRecord(verifs, models.UserVerification{
		Email: "brute@example.com", Code: "123456",
		CodeExpiresAt: testNow.Add(10 * time.Minute),
		Attempts:      0, MaxAttempts: 5,
	})

	for i := 0; i < 5; i++ {
		_, err := svc.Attempt("brute@example.com", "000000")
		assert.ErrorIs(t, err, ErrCodeInvalid)
	}
	_, err := svc.Attempt("brute@example.com", "123456")
	assert.ErrorIs(t, err, ErrUserBlocked)
	assert.True(t, verifs.records["brute@example.com"].Blocked)
}

func TestIssueReplacesExistingRecord(t *testing.T) {
	svc, users, verifs, mailer := newTestVerification(t)
	addUser(users, "redo@example.com", false)
	addRecord(verifs, models.UserVerification{
		Email: "redo@example.com", Code: "111111",
		CodeExpiresAt: testNow.Add(-time.Hour),
		Attempts:      3, MaxAttempts: 5,
	})

	require.NoError(t, svc.Issue("redo@example.com"))

	v := verifs.records["redo@example.com"]
	require.NotNil(t, v)
	assert.NotEqual(t, "111111", v.Code)
	assert.Equal(t, 0, v.Attempts)
	assert.Equal(t, 5, v.MaxAttempts)
	assert.Len(t, mailer.sent, 1)
}

func TestIssueSurvivesMailFailure(t *testing.T) {
	svc, users, verifs, mailer := newTestVerification(t)
	addUser(users, "bounce@example.com", false)
	mailer.err = errors.New("smtp down")

	require.NoError(t, svc.Issue("bounce@example.com"))
	assert.NotNil(t, verifs.records["bounce@example.com"])
}
