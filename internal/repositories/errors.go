package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (duplicate email, duplicate CIF, ...).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
