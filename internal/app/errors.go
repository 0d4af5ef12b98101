package service

import (
	"errors"

	"github.com/okian/tuna/internal/domain/model"
)

// Sentinel errors returned by the catalog service.
var (
	ErrInvalidInput = model.ErrInvalidInput
	ErrNotStarted   = errors.New("service not started")
)
