package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gestalba/internal/services"
)

type stubVerification struct {
	outcome services.VerifyOutcome
	err     error
}

func (s *stubVerification) Attempt(email, code string) (services.VerifyOutcome, error) {
	return s.outcome, s.err
}

func (s *stubVerification) Issue(email string) error { return nil }

func postVerification(t *testing.T, stub *stubVerification, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/verification", NewVerifyHandler(stub).VerifyUser)

	req := httptest.NewRequest(http.MethodPost, "/api/verification", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyUserStatusMapping(t *testing.T) {
	body := `{"email":"ana@example.com","code":"123456"}`

	cases := []struct {
		name    string
		stub    stubVerification
		status  int
		snippet string
	}{
		{"verified", stubVerification{outcome: services.OutcomeVerified}, http.StatusOK, "User verified"},
		{"code sent", stubVerification{outcome: services.OutcomeCodeSent}, http.StatusOK, "Code sent"},
		{"block cleared", stubVerification{outcome: services.OutcomeBlockCleared}, http.StatusOK, "Block lifted"},
		{"unknown user", stubVerification{err: services.ErrUserNotFound}, http.StatusNotFound, "does not exist"},
		{"already verified", stubVerification{err: services.ErrAlreadyVerified}, http.StatusConflict, "already verified"},
		{"blocked", stubVerification{err: services.ErrUserBlocked}, http.StatusLocked, "blocked"},
		{"expired", stubVerification{err: services.ErrCodeExpired}, http.StatusGone, "expired"},
		{"wrong code", stubVerification{err: services.ErrCodeInvalid}, http.StatusBadRequest, "Incorrect code"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postVerification(t, &tc.stub, body)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.snippet)
		})
	}
}

func TestVerifyUserRejectsBadPayload(t *testing.T) {
	stub := &stubVerification{outcome: services.OutcomeVerified}

	w := postVerification(t, stub, `{"email":"not-an-email","code":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postVerification(t, stub, `{"email":"ana@example.com","code":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
