package chat

import "errors"

var (
	ErrEmptyContent     = errors.New("content must be a non-empty string")
	ErrNotAuthenticated = errors.New("user is not authenticated")
	ErrNotAllowed       = errors.New("action is not allowed")
	ErrNotFound         = errors.New("chat not found")
	ErrInternal         = errors.New("internal server error")
)
