package service

import "errors"

var (
	// ErrNotFound covers both absent rows and rows owned by another user,
	// so a caller can never confirm the existence of someone else's data.
	ErrNotFound = errors.New("recurso não encontrado")

	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrEmailTaken         = errors.New("email já cadastrado")
	ErrSessionInvalid     = errors.New("sessão inválida ou expirada")
)

// ValidationError marks caller input the handlers should report as 400.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
