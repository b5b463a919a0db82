// Package service owns account lifecycle: signup, password and Google
// login, and the owner gate over the admin surface.
package service

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	gcrypto "github.com/Laisky/go-utils/v6/crypto"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/user/dao"
	"github.com/aahabhisheksingh/studyhub-api/internal/web/user/model"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
	"github.com/aahabhisheksingh/studyhub-api/library/throttle"
)

var Instance *Users

// Store is the slice of the users dao the service depends on.
type Store interface {
	GetUserByAccount(ctx context.Context, account string) (*model.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	ValidateLogin(ctx context.Context, account, rawPassword string) (*model.User, error)
	InsertUser(ctx context.Context, u *model.User) error
	UpdateUser(ctx context.Context, u *model.User) error
}

// GoogleTokenVerifier checks a Google ID token and returns the
// verified email, display name and subject id.
type GoogleTokenVerifier interface {
	Verify(idToken string) (email, name, googleID string, err error)
}

// Users account service
type Users struct {
	logger        glog.Logger
	store         Store
	loginThrottle *throttle.LoginThrottle
	google        GoogleTokenVerifier
	ownerEmail    string
}

// Config account service settings
type Config struct {
	// OwnerEmail gates the admin surface. Pure string comparison,
	// there is no role table.
	OwnerEmail string
	// GoogleClientID audience expected in Google ID tokens.
	GoogleClientID string
}

func Initialize(ctx context.Context, cfg Config) {
	dao.Initialize(ctx)

	lt, err := throttle.NewLoginThrottle(ctx, &throttle.LoginThrottleCfg{
		TotalNPerSec:       10,
		TotalBurst:         50,
		EachAccountNPerSec: 1,
		EachAccountBurst:   5,
	})
	if err != nil {
		log.Logger.Panic("create login throttle", zap.Error(err))
	}

	Instance = New(log.Logger.Named("user"), dao.Instance, lt,
		googleVerifier{clientID: cfg.GoogleClientID}, cfg.OwnerEmail)
}

// New new users service
func New(logger glog.Logger,
	store Store,
	loginThrottle *throttle.LoginThrottle,
	google GoogleTokenVerifier,
	ownerEmail string,
) *Users {
	return &Users{
		logger:        logger,
		store:         store,
		loginThrottle: loginThrottle,
		google:        google,
		ownerEmail:    ownerEmail,
	}
}

// IsOwner reports whether the session email is the configured owner.
// Exact, case-sensitive comparison: changing the configured owner email
// changes who is owner on the next session evaluation, nothing stored
// moves.
func IsOwner(sessionEmail, ownerEmail string) bool {
	return ownerEmail != "" && sessionEmail == ownerEmail
}

// IsOwner reports whether the account is the configured owner.
func (s *Users) IsOwner(account string) bool {
	return IsOwner(account, s.ownerEmail)
}

// Login validates the account and password.
//
// Unknown account and wrong password are both ErrInvalidCredentials,
// callers must not be able to probe which emails are registered.
func (s *Users) Login(ctx context.Context, account, password string) (*model.User, error) {
	account = NormalizeAccount(account)
	if account == "" || password == "" {
		return nil, errors.WithStack(model.ErrInvalidCredentials)
	}

	if s.loginThrottle != nil && !s.loginThrottle.Allow(account) {
		s.logger.Warn("login throttled", zap.String("account", account))
		return nil, errors.WithStack(model.ErrTooManyAttempts)
	}

	u, err := s.store.ValidateLogin(ctx, account, password)
	if err != nil {
		return nil, err
	}
	if u.Status == model.UserStatusDisabled {
		return nil, errors.WithStack(model.ErrAccountDisabled)
	}

	return u, nil
}

// Signup registers a new account with the given display name.
func (s *Users) Signup(ctx context.Context,
	account, password, displayName string) (*model.User, error) {
	account = NormalizeAccount(account)
	password = strings.TrimSpace(password)
	displayName = strings.TrimSpace(displayName)
	if account == "" || !strings.Contains(account, "@") {
		return nil, errors.New("a valid email is required")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	pwd, err := gcrypto.PasswordHash([]byte(password), gutils.HashTypeSha256)
	if err != nil {
		return nil, errors.Wrapf(err, "generate password hash for %q", account)
	}

	u := model.NewUser()
	u.Account = account
	u.DisplayName = displayName
	u.Password = pwd
	if err = s.store.InsertUser(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("signed up", zap.String("account", account))
	return u, nil
}

// LoginWithGoogle verifies the ID token and finds or creates the
// matching account. An existing password account with the same email is
// linked to the Google subject id on first Google sign-in.
func (s *Users) LoginWithGoogle(ctx context.Context, idToken string) (*model.User, error) {
	email, name, googleID, err := s.google.Verify(idToken)
	if err != nil {
		return nil, errors.Wrap(err, "verify google id token")
	}

	email = NormalizeAccount(email)
	u, err := s.store.GetUserByGoogleID(ctx, googleID)
	if err != nil {
		return nil, err
	}

	if u == nil {
		if u, err = s.store.GetUserByAccount(ctx, email); err != nil {
			return nil, err
		}
		if u != nil {
			u.GoogleID = googleID
			u.ModifiedAt = gutils.Clock.GetUTCNow()
			if err = s.store.UpdateUser(ctx, u); err != nil {
				return nil, err
			}
		}
	}

	if u == nil {
		u = model.NewUser()
		u.Account = email
		u.DisplayName = name
		u.GoogleID = googleID
		if err = s.store.InsertUser(ctx, u); err != nil {
			return nil, err
		}
		s.logger.Info("created account from google sign-in",
			zap.String("account", email))
	}

	if u.Status == model.UserStatusDisabled {
		return nil, errors.WithStack(model.ErrAccountDisabled)
	}

	return u, nil
}

// GetUser returns nil without error when the account is unknown.
func (s *Users) GetUser(ctx context.Context, account string) (*model.User, error) {
	return s.store.GetUserByAccount(ctx, NormalizeAccount(account))
}

// NormalizeAccount lowercases and trims a login email.
func NormalizeAccount(account string) string {
	return strings.ToLower(strings.TrimSpace(account))
}

type googleVerifier struct {
	clientID string
}

func (v googleVerifier) Verify(idToken string) (email, name, googleID string, err error) {
	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err = verifier.VerifyIDToken(idToken, []string{v.clientID}); err != nil {
		return "", "", "", errors.Wrap(err, "invalid google id token")
	}

	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return "", "", "", errors.Wrap(err, "decode google id token")
	}

	return claims.Email, claims.Name, claims.Sub, nil
}
