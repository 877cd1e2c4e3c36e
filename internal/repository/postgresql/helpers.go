package postgresql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

// constraintName returns the violated constraint, empty for non-postgres errors.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// updateSet accumulates "column = $n" parts for a dynamic UPDATE.
type updateSet struct {
	parts []string
	args  []interface{}
}

func (u *updateSet) set(column string, value interface{}) {
	u.parts = append(u.parts, fmt.Sprintf("%s = %s", column, u.arg(value)))
}

// arg registers a positional argument and returns its placeholder.
func (u *updateSet) arg(value interface{}) string {
	u.args = append(u.args, value)
	return fmt.Sprintf("$%d", len(u.args))
}

func (u *updateSet) empty() bool {
	return len(u.parts) == 0
}

func (u *updateSet) clause() string {
	return strings.Join(append(u.parts, "updated_at = NOW()"), ", ")
}

// sqlFilter accumulates WHERE conditions sharing one argument list.
type sqlFilter struct {
	conditions []string
	args       []interface{}
}

func (f *sqlFilter) add(condition string, value interface{}) {
	f.args = append(f.args, value)
	f.conditions = append(f.conditions, fmt.Sprintf(condition, len(f.args)))
}

// raw adds a condition without arguments.
func (f *sqlFilter) raw(condition string) {
	f.conditions = append(f.conditions, condition)
}

func (f *sqlFilter) where() string {
	return strings.Join(f.conditions, " AND ")
}

// page appends LIMIT/OFFSET placeholders.
func (f *sqlFilter) page(limit, offset int) string {
	f.args = append(f.args, limit, offset)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", len(f.args)-1, len(f.args))
}
