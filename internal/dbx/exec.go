package dbx

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
)

// ExecOne runs a statement expected to touch exactly one row; touching none
// yields common.ErrorNotFound.
func ExecOne(ctx context.Context, db DBTX, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
