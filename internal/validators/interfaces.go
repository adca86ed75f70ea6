// SPDX-License-Identifier: Apache-2.0

// Package validators provides client-side pre-submit validation for
// credential write payloads.
//
// The server re-validates everything; the point of this package is catching
// malformed input before a network round trip and giving the form a precise
// error message.
package validators

import "context"

// Validator checks an object against the validation rules registered for
// its type. Unsupported types fail with [ErrUnsupportedType].
type Validator interface {
	Validate(ctx context.Context, obj any) error
}
