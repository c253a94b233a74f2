package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// WithTenantContext executes fn inside a transaction whose connection carries
// the current tenant and user as session variables. Row-level-security
// policies on the tenant-scoped tables read app.tenant_id, so any query that
// forgets a tenant_id filter still cannot cross tenants.
//
// set_config with is_local=true scopes the variables to the transaction, so
// the pooled connection is clean when it is returned.
func WithTenantContext(ctx context.Context, db *DB, tenantID, userID string, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				fmt.Printf("rollback error during panic recovery: %v\n", rbErr)
			}
			panic(p)
		}
	}()

	if _, err := tx.Exec(ctx, `SELECT set_config('app.tenant_id', $1, true), set_config('app.user_id', $2, true)`, tenantID, userID); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return fmt.Errorf("set tenant context: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
