package database

import (
	"strings"

	"gorm.io/gorm"
)

// Paginate applies offset/limit when both page and size are positive.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 || pageSize <= 0 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// SearchAny matches term as a case-insensitive substring of any of columns.
// Both sides are folded by the database so the column and the term agree on
// what LOWER means. An empty term leaves the query untouched.
func SearchAny(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + EscapeLike(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE LOWER(?) ESCAPE '!'"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// EscapeLike escapes LIKE wildcards using '!' as the escape character, which
// mysql, postgres and sqlite all accept without extra quoting.
func EscapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}
