package gormx

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/whitekid/goxp/log"
)

type sqlError struct {
	m string
}

func (e *sqlError) Error() string { return e.m }

func newSQLError(m string) error { return &sqlError{m: m} }

var (
	ErrForeignKeyConstraintFailed = newSQLError("FOREIGN KEY constraint failed")
	ErrUniqueConstraintFailed     = newSQLError("UNIQUE constraint failed")
	ErrCheckConstraintFailed      = newSQLError("CHECK constraint failed")
)

func IsSQLError(err error) bool {
	var e *sqlError
	return errors.As(err, &e)
}

var (
	sqliteExtCodeToErr = map[sqlite3.ErrNoExtended]error{}
	mysqlErrCodeToErr  = map[uint16]error{}
	pgErrCodeToErr     = map[string]error{} // https://www.postgresql.org/docs/11/errcodes-appendix.html
)

func init() {
	sqlErrors := []struct {
		err          error
		sqliteExtErr sqlite3.ErrNoExtended
		mysqlCode    uint16
		pgCode       string
	}{
		{ErrUniqueConstraintFailed, sqlite3.ErrConstraintUnique, 1062, "23505"},
		{ErrUniqueConstraintFailed, sqlite3.ErrConstraintPrimaryKey, 1062, "23505"},
		{ErrForeignKeyConstraintFailed, sqlite3.ErrConstraintForeignKey, 1452, "23503"},
		{ErrCheckConstraintFailed, sqlite3.ErrConstraintCheck, 3819, "23514"},
	}
	for _, se := range sqlErrors {
		sqliteExtCodeToErr[se.sqliteExtErr] = se.err
		mysqlErrCodeToErr[se.mysqlCode] = se.err
		pgErrCodeToErr[se.pgCode] = se.err
	}
}

// ConvertSQLError convert gorm underlying sql driver errors
func ConvertSQLError(err error) error {
	if err == nil {
		return nil
	}

	var se sqlite3.Error
	var me *mysql.MySQLError
	var pe *pgconn.PgError

	switch {
	case errors.As(err, &se):
		if se.Code == sqlite3.ErrConstraint {
			if ee, ok := sqliteExtCodeToErr[se.ExtendedCode]; ok {
				return ee
			}
		}
		log.Debugf("\tUnhandled sqlite error: code=%d, extcode=%d", se.Code, se.ExtendedCode)

	case errors.As(err, &me):
		if ee, ok := mysqlErrCodeToErr[me.Number]; ok {
			return ee
		}
		log.Debugf("\tUnhandled mysql error: code=%d, message=%s", me.Number, me.Message)

	case errors.As(err, &pe):
		if ee, ok := pgErrCodeToErr[pe.Code]; ok {
			return ee
		}
		log.Debugf("\tUnhandled postgresql error: code=%s, detail=%s", pe.Code, pe.Detail)
	}

	return err
}
