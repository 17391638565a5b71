package models

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var linkPattern = regexp.MustCompile(`^https?://.+`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "url" is stricter than the contract here; the only requirement is an
	// http(s) scheme followed by something.
	_ = v.RegisterValidation("songlink", func(fl validator.FieldLevel) bool {
		return linkPattern.MatchString(fl.Field().String())
	})
	return v
}

// fieldMessages maps struct field and violated rule to the message reported
// to clients.
var fieldMessages = map[string]map[string]string{
	"Name": {
		"required": "Name is required",
		"min":      "Name must be at least 2 characters long",
		"max":      "Name cannot exceed 100 characters",
	},
	"Artist": {
		"required": "Artist is required",
		"min":      "Artist name must be at least 2 characters long",
		"max":      "Artist name cannot exceed 100 characters",
	},
	"Title": {
		"required": "Title is required",
		"min":      "Title must be at least 2 characters long",
		"max":      "Title cannot exceed 200 characters",
	},
	"Link": {
		"songlink": "Link must be a valid URL starting with http:// or https://",
	},
	"Message": {
		"max": "Message cannot exceed 500 characters",
	},
	"Status": {
		"required": "Status is required",
		"oneof":    "Status must be one of: pending, approved, rejected",
	},
}

// ValidationError lists one message per violated field rule.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// Validate checks s against the field rule table and returns a
// *ValidationError naming every violated field.
func (s *Song) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.StructField()][fe.Tag()]; ok {
			details = append(details, msg)
		} else {
			details = append(details, fe.Error())
		}
	}
	return &ValidationError{Details: details}
}
