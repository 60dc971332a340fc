package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	pkgerrors "course-service/pkg/errors"
)

// Driver messages for constraint failures, for dialects or driver versions that do
// not translate them into gorm's sentinel errors.
var (
	duplicateMarkers  = []string{"UNIQUE constraint failed", "duplicate key value", "Duplicate entry"}
	foreignKeyMarkers = []string{"FOREIGN KEY constraint failed", "violates foreign key constraint", "a foreign key constraint fails"}
)

// translate maps a gorm/driver error to the pkg/errors taxonomy. op describes the
// failed operation, e.g. "failed to delete user".
func translate(err error, resource, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.NewNotFoundError(resource, "")
	case errors.Is(err, gorm.ErrDuplicatedKey), containsAny(err.Error(), duplicateMarkers):
		return pkgerrors.NewAlreadyExistsError(resource, "")
	case errors.Is(err, gorm.ErrForeignKeyViolated), containsAny(err.Error(), foreignKeyMarkers):
		return pkgerrors.NewConflictError(resource, resource+" is referenced by other records", err)
	default:
		return pkgerrors.NewInternalError(op, err)
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
