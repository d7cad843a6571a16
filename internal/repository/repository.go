// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Every repository is written against database.DBTX so the same code runs
// on the pool, inside a transaction, or against pgxmock in tests.
package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// listRows runs query and collects every row into T by column name.
// The result is never nil so empty collections serialize as [].
func listRows[T any](ctx context.Context, db database.DBTX, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}

	return items, nil
}

// likePattern turns free text into a contains-pattern for ILIKE with the
// wildcard characters escaped.
func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(search) + "%"
}

// errNoChanges is returned by buildUpdate when nothing would be written.
var errNoChanges = errors.New("no columns to update")

// buildUpdate assembles a sparse UPDATE for a single row.
//
// Only whitelisted column names ever reach the SQL text; values are bound
// through named arguments. Columns are emitted in sorted order so the
// statement is stable for a given set of changes. updated_at is always
// refreshed.
func buildUpdate(table string, allowed map[string]bool, id int64, changes model.Changes, returning string) (string, pgx.NamedArgs, error) {
	columns := make([]string, 0, len(changes))
	for column := range changes {
		if !allowed[column] {
			return "", nil, errors.Errorf("column %q is not updatable on %s", column, table)
		}
		columns = append(columns, column)
	}
	if len(columns) == 0 {
		return "", nil, errNoChanges
	}
	sort.Strings(columns)

	args := pgx.NamedArgs{"id": id}
	assignments := make([]string, 0, len(columns)+1)
	for _, column := range columns {
		assignments = append(assignments, column+" = @"+column)
		args[column] = changes[column]
	}
	assignments = append(assignments, "updated_at = NOW()")

	query := "UPDATE " + table + " SET " + strings.Join(assignments, ", ") + " WHERE id = @id"
	if returning != "" {
		query += " RETURNING " + returning
	}

	return query, args, nil
}
