package sqlstore

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect carries the differences between the SQL engines the stores run on.
type Dialect struct {
	Name string

	schema     []string
	numbered   bool
	lockSuffix string

	uniqueViolation func(error) bool
	transient       func(error) bool
}

var Postgres = Dialect{
	Name:       "postgres",
	schema:     postgresSchema,
	numbered:   true,
	lockSuffix: " FOR UPDATE",
	uniqueViolation: func(err error) bool {
		return pgCode(err) == "23505"
	},
	transient: func(err error) bool {
		code := pgCode(err)
		return code == "40001" || code == "40P01"
	},
}

var SQLite = Dialect{
	Name:   "sqlite",
	schema: sqliteSchema,
	uniqueViolation: func(err error) bool {
		return sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT
	},
	transient: func(err error) bool {
		code := sqliteCode(err)
		return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
	},
}

// rebind turns ? placeholders into $1, $2, ... for engines that number them.
func (d Dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// sqliteCode returns the primary result code; extended codes keep it in the low byte.
func sqliteCode(err error) int {
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code() & 0xff
	}
	return -1
}
