package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the repositories translate into domain errors
const (
	errDuplicateEntry      = 1062
	errNoReferencedRow     = 1452
	errNoReferencedRowPre5 = 1216
)

func isMySQLError(err error, numbers ...uint16) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	for _, n := range numbers {
		if mysqlErr.Number == n {
			return true
		}
	}
	return false
}

func isDuplicateEntry(err error) bool {
	return isMySQLError(err, errDuplicateEntry)
}

func isMissingReference(err error) bool {
	return isMySQLError(err, errNoReferencedRow, errNoReferencedRowPre5)
}
