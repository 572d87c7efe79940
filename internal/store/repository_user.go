package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// userRepository is the SQL implementation of [UserRepository] shared by the
// PostgreSQL and SQLite backends. Dialect differences are confined to the
// placeholder format and the unique-violation check of [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext].
type userRepository struct {
	db  *DB
	now func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating user repository")
	return &userRepository{
		db:  db,
		now: time.Now,
	}
}

// CreateUser inserts the user and returns the row as stored.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt

	query, args, err := buildCreateUserQuery(r.db.statementBuilder(), user)
	if err != nil {
		return models.User{}, err
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if r.db.isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).
			Str("func", "*userRepository.CreateUser").
			Stringer("classification", r.db.classify(err)).
			Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// FindUserByEmail returns the user registered with email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", sq.Eq{"email": email})
}

// FindUserByID returns the user with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", sq.Eq{"id": id})
}

func (r *userRepository) FindUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByResetTokenQuery(r.db.statementBuilder(), tokenHash, now)
	if err != nil {
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByResetToken").Msg("error querying user by reset token")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	query, args, err := buildUpdatePasswordHashQuery(r.db.statementBuilder(), id, passwordHash, r.now())
	if err != nil {
		return err
	}

	return r.execSingle(ctx, "*userRepository.UpdatePasswordHash", query, args)
}

func (r *userRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiry time.Time) error {
	query, args, err := buildSetResetTokenQuery(r.db.statementBuilder(), id, tokenHash, expiry, r.now())
	if err != nil {
		return err
	}

	return r.execSingle(ctx, "*userRepository.SetResetToken", query, args)
}

// ConsumeResetToken runs the conditional UPDATE built by
// [buildConsumeResetTokenQuery]. No returned row means the token was unknown,
// expired or already consumed, reported as [ErrNoUserWasFound].
func (r *userRepository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildConsumeResetTokenQuery(r.db.statementBuilder(), tokenHash, passwordHash, now)
	if err != nil {
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.ConsumeResetToken").Msg("error consuming reset token")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) findUser(ctx context.Context, funcName string, where sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.db.statementBuilder(), where)
	if err != nil {
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		// a malformed uuid can never match a postgres row
		if isNoRows(err) || postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) execSingle(ctx context.Context, funcName, query string, args []any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// scanUser reads one row selected with [userColumns].
func scanUser(row *sql.Row) (models.User, error) {
	var (
		user      models.User
		role      string
		tokenHash sql.NullString
		expiry    sql.NullTime
	)

	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&role,
		&tokenHash,
		&expiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if isNoRows(err) {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	user.Role = models.Role(role)
	if tokenHash.Valid {
		user.ResetTokenHash = &tokenHash.String
	}
	if expiry.Valid {
		user.ResetTokenExpiry = &expiry.Time
	}

	return user, nil
}
