package sqldb

import (
	"fmt"
	"strings"
)

// Supported dialects
const (
	DialectSQLite = "sqlite"
	DialectMySQL  = "mysql"
)

// Descriptor identifies a physical store: a dialect and the DSN its driver takes.
type Descriptor struct {
	Dialect string
	DSN     string
}

func (d Descriptor) String() string {
	return d.Dialect + ":" + d.DSN
}

// ParseDescriptor reads a store location descriptor.
//
//	sqlite:<path>        SQLite database file
//	sqlite::memory:      private in-memory SQLite database
//	mysql:<dsn>          MySQL, DSN in go-sql-driver form (user:pw@tcp(host:3306)/db)
//	<path>               same as sqlite:<path>
//
// A leading "jdbc:" is ignored so descriptors such as jdbc:sqlite:tasks.db work unchanged.
func ParseDescriptor(raw string) (Descriptor, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "jdbc:")
	if s == "" {
		return Descriptor{}, fmt.Errorf("empty store descriptor")
	}

	switch {
	case strings.HasPrefix(s, DialectSQLite+":"):
		dsn := strings.TrimPrefix(s, DialectSQLite+":")
		if dsn == "" {
			return Descriptor{}, fmt.Errorf("store descriptor %q has no database path", raw)
		}
		return Descriptor{Dialect: DialectSQLite, DSN: dsn}, nil
	case strings.HasPrefix(s, DialectMySQL+":"):
		dsn := strings.TrimPrefix(s, DialectMySQL+":")
		if dsn == "" {
			return Descriptor{}, fmt.Errorf("store descriptor %q has no DSN", raw)
		}
		return Descriptor{Dialect: DialectMySQL, DSN: dsn}, nil
	case strings.Contains(s, "://"):
		return Descriptor{}, fmt.Errorf("unsupported store descriptor %q", raw)
	default:
		return Descriptor{Dialect: DialectSQLite, DSN: s}, nil
	}
}
