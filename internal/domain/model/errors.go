package model

import "errors"

// ErrInvalidInput marks values that fail catalog validation.
var ErrInvalidInput = errors.New("invalid input")
