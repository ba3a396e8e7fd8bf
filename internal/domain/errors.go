package domain

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	CodeValidation ErrCode = "validation_error"
	CodeNotFound   ErrCode = "not_found"
	CodeInternal   ErrCode = "internal_error"
)

type AppError struct {
	Code    ErrCode
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrNotFound(msg string) error   { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrInternal(msg string) error   { return &AppError{Code: CodeInternal, Message: msg} }

func IsNotFound(err error) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == CodeNotFound
}

func IsValidation(err error) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == CodeValidation
}
