package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("no encontrado")
	ErrInvalidInput = errors.New("solicitud inválida")
)

// serviceError carries the client-facing message and unwraps to its sentinel.
type serviceError struct {
	msg  string
	kind error
}

func (e *serviceError) Error() string { return e.msg }

func (e *serviceError) Unwrap() error { return e.kind }

func notFound(what string) error {
	return &serviceError{msg: what + " no encontrado", kind: ErrNotFound}
}

func invalid(msg string) error {
	return &serviceError{msg: msg, kind: ErrInvalidInput}
}

// translate maps gorm's missing-row error onto ErrNotFound.
func translate(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what)
	}
	return err
}
