// SPDX-License-Identifier: Apache-2.0

package models

import (
	"fmt"
	"slices"
)

// FieldType defines the semantic type of a user-defined credential field.
// The set is closed: rendering and validation switch over it exhaustively
// instead of comparing raw strings.
type FieldType string

const (
	// FieldText is a plain, non-secret text value.
	FieldText FieldType = "text"

	// FieldSecret is a sensitive value. It is masked by default in every
	// view and requires the same explicit reveal action as the primary
	// password field.
	FieldSecret FieldType = "secret"

	// FieldURL is a link value rendered as a navigable address.
	FieldURL FieldType = "url"

	// FieldDate is a calendar date stored as text (YYYY-MM-DD).
	FieldDate FieldType = "date"

	// FieldDropdown is a single-select value constrained to
	// [CustomField.Options].
	FieldDropdown FieldType = "dropdown"
)

// FieldTypes lists every valid [FieldType] in display order.
func FieldTypes() []FieldType {
	return []FieldType{FieldText, FieldSecret, FieldURL, FieldDate, FieldDropdown}
}

// Valid reports whether t is a member of the closed field-type set.
func (t FieldType) Valid() bool {
	return slices.Contains(FieldTypes(), t)
}

// CustomField is a user-defined, typed key/value pair attached to a
// credential beyond the built-in username/password/notes fields.
type CustomField struct {
	// Type defines how Value is interpreted and rendered.
	Type FieldType `json:"type"`

	// Name is the user-chosen label of the field. Must be non-empty and
	// unique within a credential.
	Name string `json:"name"`

	// Value holds the field content. For [FieldSecret] the value is part of
	// the decrypted payload and never appears on a masked record.
	Value string `json:"value"`

	// Options is the allowed value set. Present only when Type is
	// [FieldDropdown].
	Options []string `json:"options,omitempty"`
}

// Secret reports whether the field value must be masked by default and
// revealed only on explicit user action.
func (f CustomField) Secret() bool {
	return f.Type == FieldSecret
}

// Validate checks structural invariants of the field: a known type, a
// non-empty name, options present only for dropdowns, and a dropdown value
// drawn from its option list.
func (f CustomField) Validate() error {
	if !f.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFieldType, f.Type)
	}
	if f.Name == "" {
		return ErrFieldNameRequired
	}

	if f.Type != FieldDropdown {
		if len(f.Options) > 0 {
			return fmt.Errorf("%w: field %q", ErrUnexpectedOptions, f.Name)
		}
		return nil
	}

	if len(f.Options) == 0 {
		return fmt.Errorf("%w: field %q", ErrNoDropdownOptions, f.Name)
	}
	if f.Value != "" && !slices.Contains(f.Options, f.Value) {
		return fmt.Errorf("%w: field %q value %q", ErrValueNotInOptions, f.Name, f.Value)
	}
	return nil
}
