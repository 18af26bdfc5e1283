package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/nutritrack/nutritrack/internal/auth"
	"github.com/nutritrack/nutritrack/internal/auth/jwtware"
	"github.com/nutritrack/nutritrack/internal/models"
)

// SignupRequest is the signup payload. Profile fields are optional and
// defaulted server-side.
type SignupRequest struct {
	Username           string       `json:"username"`
	Name               string       `json:"name"`
	Email              string       `json:"email"`
	Password           string       `json:"password"`
	Age                int          `json:"age"`
	Gender             string       `json:"gender"`
	Weight             int          `json:"weight"`
	Height             int          `json:"height"`
	ActivityLevel      string       `json:"activityLevel"`
	DietaryPreferences []string     `json:"dietaryPreferences"`
	Goals              models.Goals `json:"goals"`
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
}

// SigninRequest is the signin payload.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (s *Server) handleSignup(c *fiber.Ctx) error {
	payload := new(SignupRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(err)
	}

	if err := payload.Validate(); err != nil {
		return validationError(err, "invalid signup payload")
	}

	user, err := s.auther.Register(c.Context(), auth.RegisterUserMessage{
		Username:           payload.Username,
		Name:               payload.Name,
		Email:              payload.Email,
		Password:           payload.Password,
		Age:                payload.Age,
		Gender:             payload.Gender,
		Weight:             payload.Weight,
		Height:             payload.Height,
		ActivityLevel:      payload.ActivityLevel,
		DietaryPreferences: payload.DietaryPreferences,
		Goals:              payload.Goals,
	})
	if err != nil {
		return err
	}

	if s.cfg.Debug {
		s.logger.Debug("registered user: %s", print.MaybePrettyJSON(user))
	}

	body := fiber.Map{"user": user}

	// Signup-to-session linkage is a policy decision: either hand back a
	// token immediately or make the user sign in separately.
	if s.cfg.AutoAuthOnSignup {
		token, err := s.auther.IssueToken(user.ID)
		if err != nil {
			return err
		}
		body["token"] = token
	}

	return c.JSON(body)
}

func (s *Server) handleSignin(c *fiber.Ctx) error {
	payload := new(SigninRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(err)
	}

	if err := payload.Validate(); err != nil {
		return validationError(err, "invalid signin payload")
	}

	token, user, err := s.auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}

func (s *Server) handleMe(c *fiber.Ctx) error {
	claims, err := jwtware.ClaimsFromContext(c, jwtware.DefaultContextKey)
	if err != nil {
		return err
	}

	user, err := s.auther.UserFromClaims(c.Context(), claims)
	if err != nil {
		return err
	}

	return c.JSON(user)
}
