// Package dbutil bridges gendry-built queries (MySQL style `?`
// placeholders, `LIMIT ?, ?`) onto postgres.
package dbutil

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var limitPattern = regexp.MustCompile(`(?i)LIMIT\s+\?\s*,\s*\?`)

// rewriteLimit turns `LIMIT offset, count` into `LIMIT count OFFSET
// offset`, swapping the two bound args to match.
func rewriteLimit(query string, args []interface{}) (string, []interface{}) {
	loc := limitPattern.FindStringIndex(query)
	if loc == nil {
		return query, args
	}
	offsetIdx := strings.Count(query[:loc[0]], "?")
	if offsetIdx+1 >= len(args) {
		return query, args
	}
	args[offsetIdx], args[offsetIdx+1] = args[offsetIdx+1], args[offsetIdx]
	return limitPattern.ReplaceAllString(query, "LIMIT ? OFFSET ?"), args
}

// Finalize must run on every gendry-built query before execution.
func Finalize(query string, args []interface{}) (string, []interface{}) {
	query, args = rewriteLimit(query, args)
	return sqlx.Rebind(sqlx.DOLLAR, query), args
}

// IsConflict reports whether err is a postgres unique violation.
func IsConflict(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
