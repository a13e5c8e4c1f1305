// Package validate holds the catalog's input validation: a validator instance
// with the custom tags the request types use, plus the date parsing helpers.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("person_name", validatePersonName)
	validate.RegisterValidation("us_state", validateUSState)
	validate.RegisterValidation("isbn13", validateISBN13)
	validate.RegisterValidation("birth_date", func(fl validator.FieldLevel) bool {
		return BirthDate(fl.Field().String())
	})
	validate.RegisterValidation("publication_date", func(fl validator.FieldLevel) bool {
		return PublicationDate(fl.Field().String())
	})
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Letters and spaces, with at least one letter.
var nameRe = regexp.MustCompile(`^[A-Za-z\s]*[A-Za-z][A-Za-z\s]*$`)

func validatePersonName(fl validator.FieldLevel) bool {
	return nameRe.MatchString(fl.Field().String())
}

// The 50 states plus DC and the territories, two-letter codes.
var usStates = map[string]struct{}{}

func init() {
	for _, s := range []string{
		"AL", "AK", "AS", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
		"GA", "GU", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA",
		"ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV",
		"NH", "NJ", "NM", "NY", "NC", "ND", "MP", "OH", "OK", "OR",
		"PA", "PR", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA",
		"VI", "WA", "WV", "WI", "WY",
	} {
		usStates[s] = struct{}{}
	}
}

// USState reports whether code is a valid two-letter US state/territory code.
// Comparison is case-insensitive after trimming.
func USState(code string) bool {
	_, ok := usStates[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

func validateUSState(fl validator.FieldLevel) bool {
	return USState(fl.Field().String())
}

var isbn13Re = regexp.MustCompile(`^(?:ISBN(?:-13)?:? )?97[89][- ]?[0-9]{1,5}[- ]?[0-9]+[- ]?[0-9]+[- ]?[0-9]$`)

// ISBN13 reports whether s is a well-formed ISBN-13, with or without
// separators. The digit count is checked after stripping separators since
// Go's regexp has no lookahead.
func ISBN13(s string) bool {
	s = strings.TrimSpace(s)
	if !isbn13Re.MatchString(s) {
		return false
	}
	digits := strings.NewReplacer("-", "", " ", "", "ISBN", "", ":", "").Replace(s)
	return len(digits) == 13
}

func validateISBN13(fl validator.FieldLevel) bool {
	return ISBN13(fl.Field().String())
}

// FieldError is one failed field of a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Struct validates a request payload and flattens the result into
// field/message pairs for the error envelope.
func Struct(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var out []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		field := fe.Field()
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "person_name":
			message = fmt.Sprintf("%s may contain only letters and spaces", field)
		case "us_state":
			message = fmt.Sprintf("%s must be a two-letter US state code", field)
		case "isbn13":
			message = fmt.Sprintf("%s must be a valid ISBN-13", field)
		case "birth_date", "publication_date":
			message = fmt.Sprintf("%s is not an accepted date format", field)
		case "notblank":
			message = fmt.Sprintf("%s cannot be empty or contain only spaces", field)
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		case "min":
			message = fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
		case "dive":
			message = fmt.Sprintf("%s has an invalid entry", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		name := strings.ToLower(field[:1]) + field[1:]
		out = append(out, FieldError{Field: name, Message: message})
	}
	return out
}
