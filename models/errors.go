package models

import "errors"

var (
	ErrUnknownFieldType  = errors.New("unknown custom field type")
	ErrFieldNameRequired = errors.New("custom field name is required")
	ErrUnexpectedOptions = errors.New("options are valid only for dropdown fields")
	ErrNoDropdownOptions = errors.New("dropdown field requires at least one option")
	ErrValueNotInOptions = errors.New("dropdown value is not in the option list")
	ErrUnknownCategory   = errors.New("unknown credential category")
	ErrNameRequired      = errors.New("credential name is required")
)
