package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Store is the generic record contract implemented by every entity
// repository: lookup by internal id or public identifier, listing,
// creation, partial update and deletion. Mutations persist immediately;
// concurrent updates to the same record are last-writer-wins.
type Store[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	GetByPublicID(ctx context.Context, publicID string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// buildUpdate assembles an UPDATE statement for the named columns.
// Column names are checked against the table's allowed set so a field
// map can never smuggle SQL. Columns are sorted for a deterministic
// statement. An empty field map yields an empty query, meaning no-op.
func buildUpdate(table string, allowed map[string]bool, fields map[string]any, id int64) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, nil
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !allowed[col] {
			return "", nil, fmt.Errorf("unknown column %q in %s update", col, table)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		sets[i] = col + " = ?"
		args = append(args, fields[col])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	return query, args, nil
}
