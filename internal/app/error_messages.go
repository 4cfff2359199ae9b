// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the story
// API handlers and by the client that interprets their responses.
//
// All Msg* constants are human-readable message strings written into the
// "message" field of {error, message} response bodies. The client maps them
// back to service errors, so both sides must use the same wording.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not match any user.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires an
	// authenticated user but none is present in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgEmailAlreadyExists is returned when registering an email that is
	// already in use.
	MsgEmailAlreadyExists = "email already exists"

	// MsgRegistrationFailed is returned when account creation fails for a
	// reason other than invalid input.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when a session token cannot be issued.
	MsgLoginFailed = "login failed"

	// MsgStoryNotFound is returned for an unknown story id.
	MsgStoryNotFound = "story not found"

	// MsgNotStoryOwner is returned when deleting another user's story.
	MsgNotStoryOwner = "story belongs to another user"

	// MsgPhotoRequired is returned when a story is created without a photo.
	MsgPhotoRequired = "photo is required"

	// MsgPhotoTooLarge is returned when the uploaded photo exceeds the limit.
	MsgPhotoTooLarge = "photo is too large"

	// MsgMediaNotFound is returned for an unknown media file.
	MsgMediaNotFound = "media not found"

	// MsgStoriesFetched and MsgStoryCreated are success messages of the
	// story envelope.
	MsgStoriesFetched = "stories fetched successfully"
	MsgStoryCreated   = "story created successfully"
	MsgStoryDeleted   = "story deleted"
	MsgUserCreated    = "user created"
	MsgLoginSuccess   = "success"
)
