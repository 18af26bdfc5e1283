package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/nutritrack/nutritrack/internal/models"
)

// RegisterUserMessage carries everything signup needs. Profile fields are
// optional and defaulted when absent.
type RegisterUserMessage struct {
	Username           string
	Name               string
	Email              string
	Password           string
	Age                int
	Gender             string
	Weight             int
	Height             int
	ActivityLevel      string
	DietaryPreferences []string
	Goals              models.Goals
}

// Authenticator orchestrates the credential store, password hasher, and token
// service.
type Authenticator struct {
	store  CredentialStore
	hasher PasswordAuthenticator
	tokens TokenIssuer
	logger Logger
}

// NewAuthenticator returns a new Authenticator.
func NewAuthenticator(store CredentialStore, hasher PasswordAuthenticator, tokens TokenIssuer) *Authenticator {
	return &Authenticator{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Register hashes the password and creates the user record. Uniqueness
// violations surface as ErrUserConflict.
func (a *Authenticator) Register(ctx context.Context, msg RegisterUserMessage) (*models.User, error) {
	hash, err := a.hasher.HashPassword(msg.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &models.User{
		Username:           msg.Username,
		Name:               msg.Name,
		Email:              msg.Email,
		PasswordHash:       hash,
		Age:                msg.Age,
		Gender:             msg.Gender,
		Weight:             msg.Weight,
		Height:             msg.Height,
		ActivityLevel:      msg.ActivityLevel,
		DietaryPreferences: msg.DietaryPreferences,
		Goals:              msg.Goals,
	}
	user.EnsureProfileDefaults()

	created, err := a.store.Create(ctx, user)
	if err != nil {
		a.logger.Error("register create user: %v", err)
		return nil, err
	}

	return created, nil
}

// Login verifies the email and password and mints a session token. Unknown
// emails and bad passwords produce the same error.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := a.store.GetByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		a.logger.Error("login lookup: %v", err)
		return "", nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := a.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.tokens.Generate(user.ID)
	if err != nil {
		a.logger.Error("login token generate: %v", err)
		return "", nil, err
	}

	return token, user, nil
}

// IssueToken mints a token for an already-verified user, used by signup when
// auto-authentication is enabled.
func (a *Authenticator) IssueToken(userID int64) (string, error) {
	return a.tokens.Generate(userID)
}

// UserFromClaims resolves verified token claims back to the user record.
func (a *Authenticator) UserFromClaims(ctx context.Context, claims *Claims) (*models.User, error) {
	id := claims.UserID()
	if id == 0 {
		return nil, ErrTokenMalformed
	}

	user, err := a.store.GetByID(ctx, id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
