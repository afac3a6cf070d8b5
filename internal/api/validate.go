package api

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/imparlab/impar/internal/services"
)

var validate = validator.New()

// checkPayload runs struct-tag validation and converts failures into the
// service error taxonomy so they surface as 400s.
func checkPayload(v any) error {
	if err := validate.Struct(v); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return services.NewInvalidError("invalid field: " + errs[0].Field())
		}
		return services.NewInvalidError("invalid payload")
	}
	return nil
}

type registerRequest struct {
	Email    string           `json:"email" validate:"required,email"`
	Password string           `json:"password" validate:"required,min=6"`
	Name     string           `json:"name" validate:"required"`
	Profile  services.Profile `json:"profile"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createSurveyRequest struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Questions   []services.Question `json:"questions" validate:"required,min=1"`
	EndDate     *time.Time          `json:"end_date"`
}

type submitResponseRequest struct {
	Answers []services.Answer `json:"answers" validate:"required,min=1"`
}

type createNewsRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type teamApplicationRequest struct {
	Message string `json:"message" validate:"required"`
}
