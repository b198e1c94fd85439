package database

import "strings"

// PostgreSQL error classification. Bun surfaces driver errors as plain
// strings, so match on the SQLSTATE code the way the server reports it.

// IsUniqueViolation reports whether err is a unique constraint violation (23505)
func IsUniqueViolation(err error) bool {
	return containsSQLState(err, "23505")
}

// IsForeignKeyViolation reports whether err is a foreign key violation (23503)
func IsForeignKeyViolation(err error) bool {
	return containsSQLState(err, "23503")
}

// IsSerializationFailure reports whether err is a serialization failure (40001)
// or a deadlock (40P01). Both mean the transaction lost a concurrency race and
// is safe to retry from scratch.
func IsSerializationFailure(err error) bool {
	return containsSQLState(err, "40001") || containsSQLState(err, "40P01")
}

// IsRetryable reports whether the whole operation can be retried with fresh reads
func IsRetryable(err error) bool {
	return IsSerializationFailure(err) || IsUniqueViolation(err)
}

func containsSQLState(err error, code string) bool {
	if err == nil {
		return false
	}
	// Anchor on the SQLSTATE marker pgx appends to server errors. A bare
	// substring match would false-positive on messages that embed hex
	// hashes or ids containing the digits of a code.
	return strings.Contains(err.Error(), "SQLSTATE "+code)
}
