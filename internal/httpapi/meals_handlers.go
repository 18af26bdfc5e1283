package httpapi

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/nutritrack/nutritrack/internal/auth/jwtware"
	"github.com/nutritrack/nutritrack/internal/models"
)

// MealRequest is the meal-logging payload. The user is always the token's
// owner, never taken from the body.
type MealRequest struct {
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	Carbs     int       `json:"carbs"`
	Fat       int       `json:"fat"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	IsPlanned bool      `json:"isPlanned"`
}

// Validate will run validation rules
func (r MealRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Calories, validation.Min(0)),
		validation.Field(&r.Protein, validation.Min(0)),
		validation.Field(&r.Carbs, validation.Min(0)),
		validation.Field(&r.Fat, validation.Min(0)),
		validation.Field(&r.Type, validation.Required, validation.By(validateMealType)),
	)
}

func validateMealType(value any) error {
	t, _ := value.(string)
	if !models.KnownMealType(t) {
		return errors.New("must be breakfast, lunch, dinner, or snack")
	}
	return nil
}

func (s *Server) handleCreateMeal(c *fiber.Ctx) error {
	claims, err := jwtware.ClaimsFromContext(c, jwtware.DefaultContextKey)
	if err != nil {
		return err
	}

	payload := new(MealRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(err)
	}

	if err := payload.Validate(); err != nil {
		return validationError(err, "invalid meal payload")
	}

	meal := &models.Meal{
		UserID:    claims.UserID(),
		Name:      payload.Name,
		Calories:  payload.Calories,
		Protein:   payload.Protein,
		Carbs:     payload.Carbs,
		Fat:       payload.Fat,
		Date:      payload.Date,
		Type:      payload.Type,
		IsPlanned: payload.IsPlanned,
	}

	created, err := s.repos.Meals().Create(c.Context(), meal)
	if err != nil {
		return err
	}

	return c.JSON(created)
}

func (s *Server) handleTodayMeals(c *fiber.Ctx) error {
	claims, err := jwtware.ClaimsFromContext(c, jwtware.DefaultContextKey)
	if err != nil {
		return err
	}

	meals, err := s.repos.Meals().ListForDay(c.Context(), claims.UserID(), time.Now())
	if err != nil {
		return err
	}

	return c.JSON(meals)
}
