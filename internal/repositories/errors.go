package repositories

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"social-service/internal/domain"
)

// pqConstraintErr maps a unique violation on the named constraint or index
// to kind; other unique violations and unrelated errors pass through storeErr.
func pqConstraintErr(err error, constraint string, kind error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == constraint {
		return kind
	}
	return storeErr(err)
}

// storeErr classifies driver failures. Connection-class errors become
// ErrTransient so callers know a retry is safe; everything else is wrapped.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	return err
}
