package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/angelmondragon/storefront/internal/users"
	pkgAuth "github.com/angelmondragon/storefront/pkg/auth"
	"github.com/angelmondragon/storefront/pkg/auth/session"
	"github.com/angelmondragon/storefront/pkg/clock"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service is the authentication capability behind /auth.
type Service interface {
	SignUp(ctx context.Context, req Credentials) (*Session, error)
	SignIn(ctx context.Context, req Credentials) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetSession(ctx context.Context, accessToken string) (*Session, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*Session, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time, newHash string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string, userID uuid.UUID) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (session.Rotation, error)
	HasSession(ctx context.Context, accessID string) (bool, error)
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Clock          clock.Clock
}

type service struct {
	users   userRepository
	session sessionManager
	jwtCfg  config.JWTConfig
	hasher  *security.Hasher
	clock   clock.Clock
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repository is required")
	}
	if params.SessionManager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	clk := params.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{
		users:   params.UserRepo,
		session: params.SessionManager,
		jwtCfg:  params.JWTConfig,
		hasher:  security.NewHasher(params.PasswordConfig),
		clock:   clk,
	}, nil
}

func (s *service) SignUp(ctx context.Context, req Credentials) (*Session, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if err := security.CheckPasswordPolicy(req.Password); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	user, err := s.users.Create(ctx, users.CreateUserDTO{Email: email, PasswordHash: hash})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	now, err := s.recordLogin(ctx, user, "")
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user, now)
}

func (s *service) SignIn(ctx context.Context, req Credentials) (*Session, error) {
	user, rehash, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	now, err := s.recordLogin(ctx, user, rehash)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user, now)
}

// SignOut revokes the session behind accessToken. Expired tokens are accepted
// so a stale client can still sign out; unknown sessions are ignored.
func (s *service) SignOut(ctx context.Context, accessToken string) error {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if err := s.session.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

// GetSession returns nil, nil when the token is expired, revoked or malformed.
func (s *service) GetSession(ctx context.Context, accessToken string) (*Session, error) {
	claims, err := pkgAuth.ParseAccessToken(s.jwtCfg, accessToken)
	if err != nil {
		return nil, nil
	}
	live, err := s.session.HasSession(ctx, claims.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check session")
	}
	if !live {
		return nil, nil
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.IsActive {
		return nil, nil
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time.UTC()
	}
	return &Session{AccessToken: accessToken, ExpiresAt: expiresAt, User: users.FromModel(user)}, nil
}

// Refresh rotates the refresh token and mints a new access token for the
// same user. The old access token may be expired.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*Session, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	rotated, err := s.session.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}
	user, err := s.users.FindByID(ctx, rotated.UserID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}

	token, expiresAt, err := pkgAuth.MintAccessToken(s.jwtCfg, s.clock.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    rotated.AccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &Session{AccessToken: token, RefreshToken: rotated.RefreshToken, ExpiresAt: expiresAt, User: users.FromModel(user)}, nil
}

func (s *service) issue(ctx context.Context, user *models.User, now time.Time) (*Session, error) {
	accessID := session.NewAccessID()
	token, expiresAt, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refresh, err := s.session.Generate(ctx, accessID, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}
	return &Session{AccessToken: token, RefreshToken: refresh, ExpiresAt: expiresAt, User: users.FromModel(user)}, nil
}

// authenticate returns the user and, when the stored hash uses outdated
// argon2 costs, a fresh hash of password to persist.
func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	denied := pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	input := normalizeEmail(email)
	if input == "" {
		return nil, "", denied
	}
	user, err := s.users.FindByEmail(ctx, input)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", denied
	}
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	ok, rehash, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok || !user.IsActive {
		return nil, "", denied
	}
	if !rehash {
		return user, "", nil
	}
	upgraded, err := s.hasher.Hash(password)
	if err != nil {
		return user, "", nil
	}
	return user, upgraded, nil
}

func (s *service) recordLogin(ctx context.Context, user *models.User, newHash string) (time.Time, error) {
	now := s.clock.Now().UTC()
	if err := s.users.RecordLogin(ctx, user.ID, now, newHash); err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record login")
	}
	user.LastLoginAt = &now
	if newHash != "" {
		user.PasswordHash = newHash
	}
	return now, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
