package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
