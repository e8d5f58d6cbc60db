package router

import "errors"

var (
	ErrInvalidPattern = errors.New("invalid route path pattern")
	ErrDuplicateParam = errors.New("duplicate parameter name")
	ErrInvalidMethod  = errors.New("invalid http method")
	ErrNilHandler     = errors.New("nil route handler")
)
