package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const sqlStateUniqueViolation = "23505"

// Report flattens an error chain for structured logs.
type Report struct {
	Message string   `json:"message"`
	Code    Code     `json:"code,omitempty"`
	Chain   []string `json:"chain,omitempty"`
	// Postgres fields, set when a *pgconn.PgError is in the chain.
	SQLState   string `json:"sql_state,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Table      string `json:"table,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

func Dump(err error) Report {
	if err == nil {
		return Report{}
	}
	r := Report{Message: err.Error()}
	if typed := As(err); typed != nil {
		r.Code = typed.Code()
	}
	for link := err; link != nil; link = stdErrors.Unwrap(link) {
		r.Chain = append(r.Chain, fmt.Sprintf("%T: %v", link, link))
	}
	if pg := postgresError(err); pg != nil {
		r.SQLState, r.Constraint, r.Table, r.Detail = pg.Code, pg.ConstraintName, pg.TableName, pg.Detail
	}
	return r
}

// Fields renders the report as log fields, skipping empty Postgres values.
func (r Report) Fields() map[string]any {
	fields := map[string]any{
		"error":       r.Message,
		"error_code":  r.Code,
		"error_chain": r.Chain,
	}
	if r.SQLState != "" {
		fields["pg_code"] = r.SQLState
		fields["pg_constraint"] = r.Constraint
		fields["pg_table"] = r.Table
	}
	return fields
}

func postgresError(err error) *pgconn.PgError {
	var pg *pgconn.PgError
	if stdErrors.As(err, &pg) {
		return pg
	}
	return nil
}

// IsUniqueViolation reports whether err carries Postgres SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	pg := postgresError(err)
	return pg != nil && pg.Code == sqlStateUniqueViolation
}
