package httpapi

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nutritrack/nutritrack/internal/auth/jwtware"
	"github.com/nutritrack/nutritrack/internal/models"
)

// handleCreateUser is the legacy unauthenticated create endpoint kept for
// compatibility with the original API surface. Passwords still get hashed.
func (s *Server) handleCreateUser(c *fiber.Ctx) error {
	payload := new(SignupRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(err)
	}

	hash := ""
	if payload.Password != "" {
		var err error
		if hash, err = s.hasher.HashPassword(payload.Password); err != nil {
			return err
		}
	}

	user := &models.User{
		Username:           payload.Username,
		Name:               payload.Name,
		Email:              payload.Email,
		PasswordHash:       hash,
		Age:                payload.Age,
		Gender:             payload.Gender,
		Weight:             payload.Weight,
		Height:             payload.Height,
		ActivityLevel:      payload.ActivityLevel,
		DietaryPreferences: payload.DietaryPreferences,
		Goals:              payload.Goals,
	}

	created, err := s.repos.Users().Create(c.Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(created)
}

// handleGetUser is the legacy unauthenticated fetch-by-id endpoint.
func (s *Server) handleGetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid user id").
			WithCode(goerrors.CodeBadRequest)
	}

	user, err := s.repos.Users().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// ProfileUpdateRequest carries the onboarding profile fields.
type ProfileUpdateRequest struct {
	Age                int          `json:"age"`
	Gender             string       `json:"gender"`
	Weight             int          `json:"weight"`
	Height             int          `json:"height"`
	ActivityLevel      string       `json:"activityLevel"`
	DietaryPreferences []string     `json:"dietaryPreferences"`
	Goals              models.Goals `json:"goals"`
}

// Validate will run validation rules
func (r ProfileUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&r.Weight, validation.Min(0)),
		validation.Field(&r.Height, validation.Min(0)),
	)
}

func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	claims, err := jwtware.ClaimsFromContext(c, jwtware.DefaultContextKey)
	if err != nil {
		return err
	}

	payload := new(ProfileUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(err)
	}

	if err := payload.Validate(); err != nil {
		return validationError(err, "invalid profile payload")
	}

	user, err := s.repos.Users().GetByID(c.Context(), claims.UserID())
	if err != nil {
		return err
	}

	user.Age = payload.Age
	user.Gender = payload.Gender
	user.Weight = payload.Weight
	user.Height = payload.Height
	user.ActivityLevel = payload.ActivityLevel
	user.DietaryPreferences = payload.DietaryPreferences
	user.Goals = payload.Goals
	user.EnsureProfileDefaults()

	updated, err := s.repos.Users().UpdateProfile(c.Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}
