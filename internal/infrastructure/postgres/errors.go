package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// constraintFields maps constraint names of db/migrations to the column
// they guard.
var constraintFields = map[string]string{
	"users_email_key":    "email",
	"users_username_key": "username",
}

// translateError turns driver errors into the gateway's typed errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &repository.UniqueViolationError{
				Field:      constraintFields[pgErr.ConstraintName],
				Constraint: pgErr.ConstraintName,
			}
		case codeForeignKeyViolation:
			return repository.ErrReferenceMissing
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &repository.UniqueViolationError{}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return repository.ErrReferenceMissing
	}
	return err
}
