package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warung-pos/internal/config"
	"warung-pos/internal/menu"
	"warung-pos/internal/pricing"
)

func testAggregator() *Aggregator {
	return NewAggregator(pricing.NewEngine(config.PricingConfig{
		Tiers: map[string]int{
			"silver":   5,
			"gold":     10,
			"platinum": 15,
		},
		Promo:     config.PromoConfig{Amount: 20000, MinSubtotal: 100000},
		Voucher:   config.VoucherConfig{Percent: 20, MaxAmount: 50000},
		HappyHour: config.HappyHourConfig{Percent: 25, StartHour: 14, EndHour: 16},
	}))
}

func TestAggregate_EmptyOrder(t *testing.T) {
	agg := testAggregator()

	_, err := agg.Aggregate(nil, pricing.Context{}, Ref{})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = agg.Aggregate([]*Line{}, pricing.Context{}, Ref{})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestAggregate_RejectsHandBuiltInvalidQuantity(t *testing.T) {
	agg := testAggregator()
	item := testItem(t, "Sate Ayam", 30000)

	lines := []*Line{
		{Item: item, Quantity: 1, UnitPrice: 30000},
		{Item: item, Quantity: 0, UnitPrice: 30000},
	}

	_, err := agg.Aggregate(lines, pricing.Context{Now: time.Now()}, Ref{})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAggregate_HappyHourOutranksGoldTier(t *testing.T) {
	agg := testAggregator()
	item := testItem(t, "Paket Keluarga", 120000)

	line, err := NewLine(item, 1, nil, "")
	require.NoError(t, err)

	facts := pricing.Context{
		Tier: pricing.TierGold,
		Now:  time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local),
	}

	finalized, err := agg.Aggregate([]*Line{line}, facts, Ref{Number: "ORD_20250610_001", CustomerID: 7, TableNumber: 4})
	require.NoError(t, err)

	assert.Equal(t, int64(120000), finalized.Subtotal)
	assert.Equal(t, int64(30000), finalized.Discount.Amount)
	assert.Equal(t, "happy-hour", finalized.Discount.Policy)
	assert.Equal(t, int64(90000), finalized.Total)
	assert.Equal(t, "ORD_20250610_001", finalized.Number)
	assert.NotEmpty(t, finalized.ID)
	assert.False(t, finalized.CreatedAt.IsZero())
}

func TestAggregate_SumsMultipleLines(t *testing.T) {
	agg := testAggregator()

	nasi, err := NewLine(testItem(t, "Nasi Goreng", 25000), 2, []menu.Customization{menu.ExtraCheese(), menu.LargeSize()}, "")
	require.NoError(t, err)
	teh, err := NewLine(testItem(t, "Es Teh", 8000), 3, []menu.Customization{menu.IceLevel("Less")}, "")
	require.NoError(t, err)

	facts := pricing.Context{
		Tier: pricing.TierNone,
		Now:  time.Date(2025, 6, 10, 11, 0, 0, 0, time.Local),
	}

	finalized, err := agg.Aggregate([]*Line{nasi, teh}, facts, Ref{})
	require.NoError(t, err)

	// 80000 + 24000, promo fires at 100000
	assert.Equal(t, int64(104000), finalized.Subtotal)
	assert.Equal(t, "promo", finalized.Discount.Policy)
	assert.Equal(t, int64(20000), finalized.Discount.Amount)
	assert.Equal(t, int64(84000), finalized.Total)
}

func TestAggregateWith_ForcesPolicy(t *testing.T) {
	agg := testAggregator()

	line, err := NewLine(testItem(t, "Ayam Bakar", 90000), 1, nil, "")
	require.NoError(t, err)

	facts := pricing.Context{
		Tier:        pricing.TierGold,
		VoucherCode: "HEMAT20",
		Now:         time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local),
	}

	finalized, err := agg.AggregateWith(pricing.Voucher{Percent: 20, MaxAmount: 50000}, []*Line{line}, facts, Ref{})
	require.NoError(t, err)

	assert.Equal(t, "voucher", finalized.Discount.Policy)
	assert.Equal(t, int64(18000), finalized.Discount.Amount)
	assert.Equal(t, int64(72000), finalized.Total)
}

func TestRecords_ShapesRows(t *testing.T) {
	agg := testAggregator()

	item := testItem(t, "Mie Ayam", 25000)
	item.ID = 12

	line, err := NewLine(item, 2, []menu.Customization{menu.ExtraCheese()}, "no onions")
	require.NoError(t, err)

	finalized, err := agg.Aggregate([]*Line{line}, pricing.Context{Now: time.Date(2025, 6, 10, 11, 0, 0, 0, time.Local)}, Ref{
		Number:      "ORD_20250610_042",
		CustomerID:  3,
		TableNumber: 9,
	})
	require.NoError(t, err)

	rec, items := finalized.Records()

	assert.Equal(t, finalized.ID, rec.ID)
	assert.Equal(t, "ORD_20250610_042", rec.Number)
	assert.Equal(t, 3, rec.CustomerID)
	assert.Equal(t, 9, rec.TableNumber)
	assert.Equal(t, finalized.Total, rec.TotalPrice)
	assert.Equal(t, StatusPending, rec.Status)

	require.Len(t, items, 1)
	assert.Equal(t, finalized.ID, items[0].OrderID)
	assert.Equal(t, 12, items[0].ItemID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(30000), items[0].Price)
	assert.Equal(t, "Extra Cheese; no onions", items[0].Notes)
}

func TestGenerateOrderNumber(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD_20250610_001", GenerateOrderNumber(date, 1))
	assert.Equal(t, "ORD_20250610_042", GenerateOrderNumber(date, 42))
	assert.Equal(t, "ORD_20250610_100", GenerateOrderNumber(date, 100))
}
