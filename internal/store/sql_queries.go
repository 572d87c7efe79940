package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-auth-keeper/models"
)

const usersTable = "users"

// userColumns lists the columns of the users table in the order
// [scanUser] expects them.
var userColumns = []string{
	"id",
	"email",
	"password_hash",
	"role",
	"reset_token_hash",
	"reset_token_expiry",
	"created_at",
	"updated_at",
}

func returningUserColumns() string {
	return "RETURNING " + strings.Join(userColumns, ", ")
}

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Insert(usersTable).
		Columns("id", "email", "password_hash", "role", "created_at", "updated_at").
		Values(user.ID, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt.UTC(), user.UpdatedAt.UTC()).
		Suffix(returningUserColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildFindUserByResetTokenQuery(b sq.StatementBuilderType, tokenHash string, now time.Time) (string, []any, error) {
	return buildFindUserQuery(b, sq.And{
		sq.Eq{"reset_token_hash": tokenHash},
		sq.Gt{"reset_token_expiry": now.UTC()},
	})
}

func buildUpdatePasswordHashQuery(b sq.StatementBuilderType, id, passwordHash string, now time.Time) (string, []any, error) {
	query, args, err := b.Update(usersTable).
		Set("password_hash", passwordHash).
		Set("updated_at", now.UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSetResetTokenQuery(b sq.StatementBuilderType, id, tokenHash string, expiry, now time.Time) (string, []any, error) {
	query, args, err := b.Update(usersTable).
		Set("reset_token_hash", tokenHash).
		Set("reset_token_expiry", expiry.UTC()).
		Set("updated_at", now.UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildConsumeResetTokenQuery builds the single conditional UPDATE that swaps
// the password hash and clears both reset columns. The WHERE clause repeats
// the validity check so that a concurrent consumer matches zero rows.
func buildConsumeResetTokenQuery(b sq.StatementBuilderType, tokenHash, passwordHash string, now time.Time) (string, []any, error) {
	query, args, err := b.Update(usersTable).
		Set("password_hash", passwordHash).
		Set("reset_token_hash", nil).
		Set("reset_token_expiry", nil).
		Set("updated_at", now.UTC()).
		Where(sq.Eq{"reset_token_hash": tokenHash}).
		Where(sq.Gt{"reset_token_expiry": now.UTC()}).
		Suffix(returningUserColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
