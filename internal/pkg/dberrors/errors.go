package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	CodeUniqueViolation          = "23505"
	CodeForeignKeyViolation      = "23503"
	CodeInvalidRegularExpression = "2201B"
)

// hasCode reports whether err wraps a PgError with the given SQLSTATE.
func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// IsDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func IsDuplicateKeyError(err error) bool {
	return hasCode(err, CodeUniqueViolation)
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	// Check if the error is a PgError, if the code is unique_violation (23505),
	// and if the constraint name matches the provided one.
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsForeignKeyError checks if the error is a PostgreSQL foreign key violation.
func IsForeignKeyError(err error) bool {
	return hasCode(err, CodeForeignKeyViolation)
}

// IsInvalidRegexError checks if PostgreSQL rejected a regular expression operand.
func IsInvalidRegexError(err error) bool {
	return hasCode(err, CodeInvalidRegularExpression)
}
