package util

import "strings"

// IsUniqueConstraintViolation reports whether err is an Oracle unique
// constraint violation (ORA-00001). go-ora surfaces these as plain errors,
// so the code has to be matched on the message.
func IsUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "ORA-00001") || strings.Contains(msg, "unique constraint")
}
