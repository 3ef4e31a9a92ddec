package persistence

import (
	"errors"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// translateError maps driver-level errors to domain sentinels. Unique index
// violations become shared.ErrAlreadyExists so document-number generators
// can retry with a fresh candidate.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return shared.ErrAlreadyExists
	}
	return err
}
