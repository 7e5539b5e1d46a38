package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ifcampus/meal-gateway/internal/dto"
	"github.com/ifcampus/meal-gateway/internal/models"
	"github.com/ifcampus/meal-gateway/pkg/config"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
)

type authGateway interface {
	Post(ctx context.Context, token, path string, body interface{}) ([]json.RawMessage, error)
}

type studentRepository interface {
	Find(ctx context.Context, token string, id int) (*models.Student, error)
}

// AuthService proxies authentication to the upstream meal API and issues the
// stateless session tokens consumed by the mobile app. The upstream bearer
// token is carried inside the session claims, so no session state lives in
// the gateway.
type AuthService struct {
	gw        authGateway
	students  studentRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    config.SessionConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(gw authGateway, students studentRepository, validate *validator.Validate, logger *zap.Logger, cfg config.SessionConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{gw: gw, students: students, validator: validate, logger: logger, config: cfg, now: time.Now}
}

// Login forwards the credentials upstream and wraps the returned bearer token
// into a session token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	items, err := s.gw.Post(ctx, "", "/login", map[string]string{
		"email":    req.Email,
		"password": req.Password,
	})
	if err != nil {
		// A 401 here means bad credentials, not an expired session.
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrSessionExpired.Code {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid email or password")
		}
		return nil, err
	}
	if len(items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "não foi possível realizar o login")
	}

	var envelope models.LoginEnvelope
	if err := json.Unmarshal(items[0], &envelope); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamMalformed.Code, appErrors.ErrUpstreamMalformed.Status, "unexpected login payload")
	}
	login := envelope.Login

	if login.AccessToken == "" {
		return nil, appErrors.Clone(appErrors.ErrUpstreamMalformed, "login response missing access token")
	}
	if login.Active == 0 {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "conta inativa")
	}

	expiry := s.config.Expiration
	if login.ExpiresIn > 0 {
		if upstreamExpiry := time.Duration(login.ExpiresIn) * time.Second; upstreamExpiry < expiry {
			// Never outlive the upstream token we carry.
			expiry = upstreamExpiry
		}
	}

	token, err := s.issueToken(login, expiry)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(expiry.Seconds()),
		Student: dto.StudentInfo{
			ID:             login.ID,
			Classification: login.Classification,
			Campus:         login.Campus,
			Active:         login.Active == 1,
		},
	}, nil
}

func (s *AuthService) issueToken(login models.UpstreamLogin, expiry time.Duration) (string, error) {
	now := s.now().UTC()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   strconv.Itoa(login.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		StudentID:      login.ID,
		Classification: login.Classification,
		UpstreamToken:  login.AccessToken,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}

// ValidateToken parses and verifies a session token. Expired tokens map to
// the session-expired error so the client tears the session down.
func (s *AuthService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrSessionExpired, "")
		}
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}
	if !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}
	if s.config.Issuer != "" && claims.Issuer != s.config.Issuer {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}
	if strings.TrimSpace(claims.UpstreamToken) == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}

	return claims, nil
}

// Profile fetches the student profile for the current session.
func (s *AuthService) Profile(ctx context.Context, session *models.SessionClaims) (*models.Student, error) {
	return s.students.Find(ctx, session.UpstreamToken, session.StudentID)
}
