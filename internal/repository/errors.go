// Package repository defines error values that are reused across
// multiple repositories.  These sentinel values allow higher layers
// such as services and handlers to distinguish failure scenarios: for
// example, ErrForbidden indicates the caller is not authorized to act
// on a resource owned by someone else, while ErrDuplicate signals that
// a unique-constrained insert lost the race to an earlier row.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own or administer.  Handlers should translate
// this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting existing state, such as deciding on a candidate that has
// already been decided.  Handlers should translate this into an HTTP
// 409 response.
var ErrConflict = errors.New("conflict")

// ErrDuplicate is returned when an insert hits a unique index.  The
// uniqueness rules of this engine (one swipe per pair, one match per
// pair, one landlord per phone hash) are enforced by the database, not
// by check-then-insert, so concurrent writers surface here instead of
// silently duplicating rows.
var ErrDuplicate = errors.New("duplicate row")

// mysqlDuplicateEntry is the server error number for a unique key
// violation (ER_DUP_ENTRY).
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL unique-constraint
// violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
