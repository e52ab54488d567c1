package server

import (
	"github.com/go-playground/validator/v10"

	"main/amizone"
	"main/errors"
)

var validate = validator.New()

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func validateLogin(creds amizone.Credentials) error {
	form := loginForm{Username: creds.Username, Password: creds.Password}
	if err := validate.Struct(form); err != nil {
		return errors.NewError("server.validateLogin", "incomplete login form", errors.ErrIncompleteCreds)
	}
	return nil
}

// validateFeedback checks the rating bounds declared on the payload
// type before the request leaves for Amizone.
func validateFeedback(feedback amizone.FacultyFeedback) error {
	if err := validate.Struct(feedback); err != nil {
		return errors.NewError("server.validateFeedback", "rating out of range", errors.ErrInvalidInput)
	}
	return nil
}
