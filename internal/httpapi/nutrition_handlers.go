package httpapi

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/nutritrack/nutritrack/internal/auth/jwtware"
	"github.com/nutritrack/nutritrack/internal/models"
)

// NutritionRequest is the daily-totals payload.
type NutritionRequest struct {
	Date          time.Time `json:"date"`
	TotalCalories int       `json:"totalCalories"`
	TotalProtein  int       `json:"totalProtein"`
	TotalCarbs    int       `json:"totalCarbs"`
	TotalFat      int       `json:"totalFat"`
	Weight        *int      `json:"weight"`
}

// Validate will run validation rules
func (r NutritionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TotalCalories, validation.Min(0)),
		validation.Field(&r.TotalProtein, validation.Min(0)),
		validation.Field(&r.TotalCarbs, validation.Min(0)),
		validation.Field(&r.TotalFat, validation.Min(0)),
	)
}

func (s *Server) handleCreateNutrition(c *fiber.Ctx) error {
	claims, err := jwtware.ClaimsFromContext(c, jwtware.DefaultContextKey)
	if err != nil {
		return err
	}

	payload := new(NutritionRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(err)
	}

	if err := payload.Validate(); err != nil {
		return validationError(err, "invalid nutrition payload")
	}

	entry := &models.NutritionEntry{
		UserID:        claims.UserID(),
		Date:          payload.Date,
		TotalCalories: payload.TotalCalories,
		TotalProtein:  payload.TotalProtein,
		TotalCarbs:    payload.TotalCarbs,
		TotalFat:      payload.TotalFat,
		Weight:        payload.Weight,
	}

	created, err := s.repos.Nutrition().Create(c.Context(), entry)
	if err != nil {
		return err
	}

	return c.JSON(created)
}

func (s *Server) handleListNutrition(c *fiber.Ctx) error {
	claims, err := jwtware.ClaimsFromContext(c, jwtware.DefaultContextKey)
	if err != nil {
		return err
	}

	entries, err := s.repos.Nutrition().ListRecent(c.Context(), claims.UserID())
	if err != nil {
		return err
	}

	return c.JSON(entries)
}
