package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrInvalidCredentials covers both unknown emails and bad passwords so a
// signin failure never reveals which one it was.
var ErrInvalidCredentials = goerrors.New("Invalid email or password", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrMissingToken is returned when a request carries no bearer token.
var ErrMissingToken = goerrors.New("missing or malformed authorization header", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("MISSING_TOKEN")

// ErrTokenMalformed is returned when a presented token fails signature or
// structural checks.
var ErrTokenMalformed = goerrors.New("invalid session token", goerrors.CategoryAuth).
	WithCode(goerrors.CodeForbidden).
	WithTextCode("TOKEN_MALFORMED")

// ErrTokenExpired is returned for tokens whose expiry claim has passed.
var ErrTokenExpired = goerrors.New("session token expired", goerrors.CategoryAuth).
	WithCode(goerrors.CodeForbidden).
	WithTextCode("TOKEN_EXPIRED")

// ErrMismatchedHashAndPassword is the verification failure from the hasher.
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("PASSWORD_MISMATCH")

// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("EMPTY_PASSWORD")

// ErrUserConflict signals a username or email uniqueness violation.
var ErrUserConflict = goerrors.New("email or username already exists", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict).
	WithTextCode("USER_CONFLICT")

// ErrUserNotFound is returned when a user record cannot be located.
var ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("USER_NOT_FOUND")
