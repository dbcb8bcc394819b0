package subscribers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warung-pos/internal/order"
	"warung-pos/internal/pricing"
)

func TestCashierLedger_AccumulatesShiftTotals(t *testing.T) {
	ledger := NewCashierLedger()
	ctx := context.Background()

	orders := []*order.FinalizedOrder{
		{Subtotal: 120000, Discount: pricing.Result{Amount: 30000, Policy: "happy-hour"}, Total: 90000},
		{Subtotal: 80000, Discount: pricing.Result{Amount: 8000, Policy: "member-tier"}, Total: 72000},
		{Subtotal: 50000, Discount: pricing.Result{Amount: 0, Policy: pricing.PolicyNone}, Total: 50000},
	}
	for _, o := range orders {
		require.NoError(t, ledger.Notify(ctx, o))
	}

	summary := ledger.Summary()
	assert.Equal(t, 3, summary.Orders)
	assert.Equal(t, int64(250000), summary.Gross)
	assert.Equal(t, int64(38000), summary.Discounts)
	assert.Equal(t, int64(212000), summary.Net)
	assert.Equal(t, int64(30000), summary.ByPolicy["happy-hour"])
	assert.Equal(t, int64(8000), summary.ByPolicy["member-tier"])
	assert.Equal(t, int64(0), summary.ByPolicy[pricing.PolicyNone])
}

func TestCashierLedger_SummaryIsACopy(t *testing.T) {
	ledger := NewCashierLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Notify(ctx, &order.FinalizedOrder{
		Subtotal: 100000,
		Discount: pricing.Result{Amount: 20000, Policy: "promo"},
		Total:    80000,
	}))

	summary := ledger.Summary()
	summary.ByPolicy["promo"] = 999999

	assert.Equal(t, int64(20000), ledger.Summary().ByPolicy["promo"])
}

func TestCashierLedger_ConcurrentNotify(t *testing.T) {
	ledger := NewCashierLedger()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ledger.Notify(ctx, &order.FinalizedOrder{
				Subtotal: 10000,
				Discount: pricing.Result{Amount: 1000, Policy: "member-tier"},
				Total:    9000,
			})
		}()
	}
	wg.Wait()

	summary := ledger.Summary()
	assert.Equal(t, workers, summary.Orders)
	assert.Equal(t, int64(workers*10000), summary.Gross)
	assert.Equal(t, int64(workers*1000), summary.Discounts)
	assert.Equal(t, int64(workers*9000), summary.Net)
}
