package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type intakePayload struct {
	Source       string `validate:"required"`
	OriginalURL  string `validate:"required,url"`
	OverwriteURL string `validate:"required,url"`
}

// IntakeRequest reports the first missing or malformed required field.
func IntakeRequest(req dto.IntakeRequest) error {
	payload := intakePayload{
		Source:       req.Source,
		OriginalURL:  req.OriginalURL,
		OverwriteURL: req.OverwriteURL,
	}

	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := jsonField(verrs[0].Field())
		if verrs[0].Tag() == "required" {
			return fmt.Errorf("%s is required", field)
		}

		return fmt.Errorf("%s must be a valid URL", field)
	}

	return err
}

func jsonField(field string) string {
	switch field {
	case "Source":
		return "source"
	case "OriginalURL":
		return "originalUrl"
	case "OverwriteURL":
		return "overwriteUrl"
	default:
		return strings.ToLower(field)
	}
}
