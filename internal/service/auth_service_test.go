package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ifcampus/meal-gateway/internal/dto"
	"github.com/ifcampus/meal-gateway/internal/models"
	"github.com/ifcampus/meal-gateway/pkg/config"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
)

type fakeAuthGateway struct {
	post func(ctx context.Context, token, path string, body interface{}) ([]json.RawMessage, error)
}

func (f *fakeAuthGateway) Post(ctx context.Context, token, path string, body interface{}) ([]json.RawMessage, error) {
	return f.post(ctx, token, path, body)
}

type fakeStudentRepo struct {
	student *models.Student
	err     error
}

func (f *fakeStudentRepo) Find(_ context.Context, _ string, _ int) (*models.Student, error) {
	return f.student, f.err
}

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret",
		Expiration: 24 * time.Hour,
		Issuer:     "meal-gateway",
	}
}

func loginItems(t *testing.T, login models.UpstreamLogin) []json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(models.LoginEnvelope{Login: login})
	require.NoError(t, err)
	return []json.RawMessage{raw}
}

func activeLogin() models.UpstreamLogin {
	return models.UpstreamLogin{
		AccessToken:    "upstream-token",
		TokenType:      "bearer",
		ID:             42,
		Classification: "student",
		Campus:         "central",
		Active:         1,
		ExpiresIn:      7200,
	}
}

func TestAuthServiceLogin(t *testing.T) {
	login := activeLogin()
	gw := &fakeAuthGateway{post: func(_ context.Context, token, path string, body interface{}) ([]json.RawMessage, error) {
		assert.Empty(t, token)
		assert.Equal(t, "/login", path)
		payload, ok := body.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "student@campus.edu", payload["email"])
		return loginItems(t, login), nil
	}}

	svc := NewAuthService(gw, &fakeStudentRepo{}, nil, zap.NewNop(), sessionConfig())
	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "student@campus.edu", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 42, resp.Student.ID)
	assert.True(t, resp.Student.Active)
	// Session expiry is capped by the upstream token lifetime.
	assert.Equal(t, int64(7200), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.StudentID)
	assert.Equal(t, "upstream-token", claims.UpstreamToken)
	assert.Equal(t, "student", claims.Classification)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	gw := &fakeAuthGateway{post: func(_ context.Context, _, _ string, _ interface{}) ([]json.RawMessage, error) {
		t.Fatal("gateway should not be called for invalid payloads")
		return nil, nil
	}}
	svc := NewAuthService(gw, &fakeStudentRepo{}, nil, zap.NewNop(), sessionConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "not-an-email", Password: "secret"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "student@campus.edu"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginBadCredentials(t *testing.T) {
	// Upstream answers 401 on wrong credentials; that must read as a login
	// failure, never as an expired session.
	gw := &fakeAuthGateway{post: func(_ context.Context, _, _ string, _ interface{}) ([]json.RawMessage, error) {
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, "")
	}}
	svc := NewAuthService(gw, &fakeStudentRepo{}, nil, zap.NewNop(), sessionConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "student@campus.edu", Password: "wrong"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
	assert.Equal(t, "invalid email or password", appErr.Message)
}

func TestAuthServiceLoginEmptyEnvelope(t *testing.T) {
	gw := &fakeAuthGateway{post: func(_ context.Context, _, _ string, _ interface{}) ([]json.RawMessage, error) {
		return nil, nil
	}}
	svc := NewAuthService(gw, &fakeStudentRepo{}, nil, zap.NewNop(), sessionConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "student@campus.edu", Password: "secret"})
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	login := activeLogin()
	login.Active = 0
	gw := &fakeAuthGateway{post: func(_ context.Context, _, _ string, _ interface{}) ([]json.RawMessage, error) {
		return loginItems(t, login), nil
	}}
	svc := NewAuthService(gw, &fakeStudentRepo{}, nil, zap.NewNop(), sessionConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "student@campus.edu", Password: "secret"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
	assert.Equal(t, "conta inativa", appErr.Message)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	svc := NewAuthService(&fakeAuthGateway{}, &fakeStudentRepo{}, nil, zap.NewNop(), sessionConfig())
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.issueToken(activeLogin(), time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Equal(t, appErrors.ErrSessionExpired.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(&fakeAuthGateway{}, &fakeStudentRepo{}, nil, zap.NewNop(), sessionConfig())

	_, err := svc.ValidateToken("not-a-token")
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenWrongSecret(t *testing.T) {
	issuer := NewAuthService(&fakeAuthGateway{}, &fakeStudentRepo{}, nil, zap.NewNop(), sessionConfig())
	token, err := issuer.issueToken(activeLogin(), time.Hour)
	require.NoError(t, err)

	other := sessionConfig()
	other.Secret = "different-secret"
	verifier := NewAuthService(&fakeAuthGateway{}, &fakeStudentRepo{}, nil, zap.NewNop(), other)

	_, err = verifier.ValidateToken(token)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
