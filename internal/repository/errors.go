package repository

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate")
	ErrEmailTaken = errors.New("email already registered")
)
