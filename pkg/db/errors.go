package db

import "strings"

// IsUniqueViolation reports whether the error is a unique constraint
// violation. Postgres and sqlite word their messages differently, so both
// phrasings are matched. When constraintName is provided the match narrows
// to that constraint's text.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return true
}
