package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	inputValidator = newInputValidator()
)

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return IsValidUsername(fl.Field().String())
	})
	return v
}

// IsValidEmail checks the local@domain.tld shape.
func IsValidEmail(s string) bool { return emailPattern.MatchString(s) }

// IsValidUsername allows letters, digits, underscores and hyphens.
func IsValidUsername(s string) bool { return usernamePattern.MatchString(s) }

// HasMinLength counts runes, not bytes.
func HasMinLength(s string, n int) bool { return utf8.RuneCountInString(s) >= n }

// NormalizeEmail lower-cases and trims.
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Result is the outcome of a composite check.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// UserInput is a partial user record. Nil fields are not checked.
type UserInput struct {
	Name     *string
	Username *string
	Email    *string
}

// PostInput is a partial post record. Nil fields are not checked.
type PostInput struct {
	Title *string
	Body  *string
}

type userFields struct {
	Name     string `validate:"required,min=2"`
	Username string `validate:"required,min=3,handle"`
	Email    string `validate:"required,simple_email"`
}

type postFields struct {
	Title string `validate:"required,min=3"`
	Body  string `validate:"required,min=10"`
}

// ValidateUserInput checks only the fields present in in.
func ValidateUserInput(in UserInput) Result {
	var f userFields
	var present []string
	if in.Name != nil {
		f.Name = strings.TrimSpace(*in.Name)
		present = append(present, "Name")
	}
	if in.Username != nil {
		f.Username = strings.TrimSpace(*in.Username)
		present = append(present, "Username")
	}
	if in.Email != nil {
		f.Email = strings.TrimSpace(*in.Email)
		present = append(present, "Email")
	}
	return run(f, present)
}

// ValidatePostInput checks only the fields present in in.
func ValidatePostInput(in PostInput) Result {
	var f postFields
	var present []string
	if in.Title != nil {
		f.Title = strings.TrimSpace(*in.Title)
		present = append(present, "Title")
	}
	if in.Body != nil {
		f.Body = strings.TrimSpace(*in.Body)
		present = append(present, "Body")
	}
	return run(f, present)
}

func run(fields any, present []string) Result {
	res := Result{IsValid: true, Errors: []string{}}
	if len(present) == 0 {
		return res
	}
	err := inputValidator.StructPartial(fields, present...)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.IsValid = false
		res.Errors = append(res.Errors, err.Error())
		return res
	}
	// report in field declaration order
	byField := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		byField[fe.StructField()] = message(fe)
	}
	for _, name := range present {
		if msg, ok := byField[name]; ok {
			res.Errors = append(res.Errors, msg)
		}
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

func message(fe validator.FieldError) string {
	field := fe.StructField()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "handle":
		return "Username can only contain letters, numbers, underscores, and hyphens"
	case "simple_email":
		return "Please enter a valid email address"
	default:
		return field + " is invalid"
	}
}
