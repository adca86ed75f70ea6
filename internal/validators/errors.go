// SPDX-License-Identifier: Apache-2.0

package validators

import "errors"

var (
	// ErrUnsupportedType is returned when the validator has no rules for
	// the given object type.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrInvalidURL is returned for a service URL or url-typed field value
	// that is not an absolute http(s) address.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidDate is returned for a date-typed field value not in
	// YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)
