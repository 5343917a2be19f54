package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Both executor kinds must satisfy DBTX, including batch sends, so a
// repository method can never silently escape a context transaction.
var (
	_ DBTX = (*pgxpool.Pool)(nil)
	_ DBTX = (pgx.Tx)(nil)
)

func TestTxRoundTripsThroughContext(t *testing.T) {
	ctx := context.Background()

	if tx := GetTx(ctx); tx != nil {
		t.Fatalf("fresh context carries a transaction: %v", tx)
	}

	var tx pgx.Tx // nil value is enough to test the carrier
	withTx := SetTx(ctx, tx)
	if got := GetTx(withTx); got != tx {
		t.Errorf("GetTx = %v, want the stored transaction", got)
	}
}
