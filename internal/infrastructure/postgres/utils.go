package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// rowScanner cubre pgx.Row y pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgErrorCode(err) == codeUniqueViolation }

// isForeignKeyViolation la fila referenciada no existe (23503).
func isForeignKeyViolation(err error) bool { return pgErrorCode(err) == codeForeignKeyViolation }

func isCheckViolation(err error) bool { return pgErrorCode(err) == codeCheckViolation }

func isNumericOutOfRange(err error) bool { return pgErrorCode(err) == codeNumericOutOfRange }

// scanOne escanea una fila; pgx.ErrNoRows se traduce a (nil, nil).
func scanOne[T any](row pgx.Row, scan func(rowScanner) (*T, error), op string) (*T, error) {
	v, err := scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// collect recorre rows y cierra el cursor.
func collect[T any](rows pgx.Rows, scan func(rowScanner) (*T, error), op string) ([]*T, error) {
	defer rows.Close()
	list := make([]*T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
