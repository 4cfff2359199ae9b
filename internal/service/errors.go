package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

var (
	// ErrStoryNotFound is returned when a story is neither in the local
	// replica nor on the server.
	ErrStoryNotFound = errors.New("story not found")

	// ErrInvalidDraft is returned when a story draft fails validation.
	ErrInvalidDraft = errors.New("invalid story draft")

	// ErrNotStoryOwner is returned when deleting someone else's story.
	ErrNotStoryOwner = errors.New("story belongs to another user")

	// ErrEmailAlreadyExists is returned when registering a taken email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoCredentials is returned when the client has neither a token nor
	// email and password to log in with.
	ErrNoCredentials = errors.New("no credentials configured")

	// ErrSessionExpired is returned when the server rejects the token.
	ErrSessionExpired = errors.New("session expired, log in again")
)
