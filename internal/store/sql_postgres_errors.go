package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether a failed statement is worth retrying.
// The user repository does not retry; the value is attached to error logs.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// String returns the lower-case name used in log fields.
func (c ErrorClassification) String() string {
	if c == Retryable {
		return "retryable"
	}

	return "non_retryable"
}

// PostgresErrorClassifier implements [ErrorClassificator] over pgx errors.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify reports [Retryable] for lost connections (class 08), rolled back
// transactions (class 40: serialization failures, deadlocks) and a server
// that is still starting (57P03). Everything else, including constraint
// violations such as a duplicate email, is [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}

	switch {
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsTransactionRollback(pgErr.Code),
		pgErr.Code == pgerrcode.CannotConnectNow:
		return Retryable
	default:
		return NonRetryable
	}
}
