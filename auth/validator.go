package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type LoginRequest struct {
	Username string `validate:"required,max=64,printascii"`
	Password string `validate:"required,max=72"`
}

func ValidateLogin(req LoginRequest) error {
	return validate.Struct(req)
}
