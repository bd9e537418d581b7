package postgres

import (
	"errors"
	"fmt"

	"cur8tr/domain"

	"gorm.io/gorm"
)

// translate maps gorm sentinel errors onto domain errors and wraps the rest.
func translate(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
