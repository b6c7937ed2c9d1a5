package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/law-makers/shelf/pkg/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateQuery checks a query before any browser is started
func ValidateQuery(q models.Query) error {
	q.Keyword = strings.TrimSpace(q.Keyword)
	err := validate.Struct(q)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewEngineError(ErrCodeValidation, "invalid query", fmt.Errorf("%w: %v", ErrInvalidQuery, err))
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, strings.ToLower(fe.Field())+" cannot be empty")
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be between 1 and 50, got %v", strings.ToLower(fe.Field()), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	ee := NewEngineError(ErrCodeValidation, strings.Join(msgs, "; "), ErrInvalidQuery)
	return ee.WithDetail("fields", len(verrs))
}
