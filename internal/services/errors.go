package services

import (
	"errors"
	"fmt"

	"github.com/Mim-rose/nexthire-server/internal/apperr"
	"github.com/Mim-rose/nexthire-server/internal/database"
)

// storeErr turns a store failure into the error shown to clients. msg is the
// client-facing text for the failed operation.
func storeErr(msg string, err error) error {
	if errors.Is(err, database.ErrUnavailable) {
		return apperr.Unavailable("database not available", fmt.Errorf("%s: %w", msg, err))
	}
	return apperr.Internal(msg, err)
}
