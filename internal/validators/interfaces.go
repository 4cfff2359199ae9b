// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the services: story
// drafts submitted by the create flow, stories received from the API and
// account requests handled by the server.
//
// Rules are declared as `validate` struct tags on the models and enforced
// with go-playground/validator. Cross-field rules (a location needs both
// coordinates) are registered as struct-level validations.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
