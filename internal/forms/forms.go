// Package forms declares the request forms and their validation rules.
// Validation runs at the edge, before any handler logic: a form that
// fails here never reaches the stores. Rules mirror the registration and
// task constraints of the data model (username charset and length, task
// content charset allowing accented characters and common punctuation).
package forms

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterForm is the body of POST /register.
type RegisterForm struct {
	Username        string `form:"username" validate:"required,min=3,max=20,username"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginForm is the body of POST /login. Only presence is validated;
// credentials are checked against the store by the handler.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Remember bool   `form:"remember"`
}

// TaskForm is the body of POST /dashboard.
type TaskForm struct {
	Content string `form:"content" validate:"required,max=100,taskchars"`
}

// ProfileForm is the body of POST /profile. The password pair is
// optional; when left empty the current password is kept.
type ProfileForm struct {
	Username        string `form:"username" validate:"required,min=3,max=20,username"`
	Password        string `form:"password" validate:"omitempty,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	// Letters, digits, whitespace, common punctuation and Latin-1
	// accented characters (À–ÿ).
	taskCharsRe = regexp.MustCompile(`^[A-Za-z0-9À-ÿ\s.,!?()'"-]+$`)
)

// Validator adapts go-playground/validator to echo's Validator interface
// and registers the custom charset rules.
type Validator struct{ validate *validator.Validate }

// NewValidator builds the validator used for every bound form.
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("taskchars", func(fl validator.FieldLevel) bool {
		return taskCharsRe.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// fieldMessages maps struct field + failed tag to the user-facing text
// shown next to the form.
var fieldMessages = map[string]string{
	"Username.required":        "Username is required.",
	"Username.min":             "Username must be between 3 and 20 characters.",
	"Username.max":             "Username must be between 3 and 20 characters.",
	"Username.username":        "Username may only contain letters, digits and underscores.",
	"Password.required":        "Password is required.",
	"Password.min":             "Password must be at least 8 characters.",
	"ConfirmPassword.required": "Please confirm the password.",
	"ConfirmPassword.eqfield":  "Passwords must match.",
	"Content.required":         "Task content is required.",
	"Content.max":              "Tasks must be between 1 and 100 characters.",
	"Content.taskchars":        "Task contains characters that are not allowed.",
}

// Messages converts a validation error into the list of user-facing
// messages, one per failed field. Non-validation errors get a generic
// message so nothing internal leaks into a page.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid input."}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := fmt.Sprintf("%s.%s", fe.Field(), fe.Tag())
		if m, ok := fieldMessages[key]; ok {
			msgs = append(msgs, m)
		} else {
			msgs = append(msgs, "Invalid value for "+fe.Field()+".")
		}
	}
	return msgs
}
