// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Errors of the Authorization header parser. All of them answer 401.
var (
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader covers a missing token part and any
	// scheme other than Bearer.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header, expected `Bearer <token>`")

	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
