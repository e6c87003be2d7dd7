package domain

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrValidation       = errors.New("invalid input")
	ErrNoPendingRequest = errors.New("no pending request")
	ErrRequestPending   = errors.New("a request is already pending")
	ErrTagExists        = errors.New("tag already exists")
	ErrTagNotFound      = errors.New("tag not found")
)
