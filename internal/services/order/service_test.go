package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warung-pos/internal/config"
	"warung-pos/internal/database"
	"warung-pos/internal/logger"
	"warung-pos/internal/menu"
	"warung-pos/internal/notify"
	"warung-pos/internal/order"
	"warung-pos/internal/pricing"
)

type stubCatalog struct {
	items map[int]*menu.MenuItem
}

func (s *stubCatalog) GetMenuItem(_ context.Context, id int) (*menu.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return item, nil
}

func (s *stubCatalog) ListMenuItems(_ context.Context) ([]*menu.MenuItem, error) {
	items := make([]*menu.MenuItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	return items, nil
}

type stubDirectory struct {
	customers map[int]*database.Customer
}

func (s *stubDirectory) GetCustomer(_ context.Context, id int) (*database.Customer, error) {
	customer, ok := s.customers[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return customer, nil
}

type stubSequencer struct {
	next int
}

func (s *stubSequencer) NextOrderSequence(_ context.Context, _ time.Time) (int, error) {
	s.next++
	return s.next, nil
}

type recordingSubscriber struct {
	id string

	mu     sync.Mutex
	orders []*order.FinalizedOrder
}

func (r *recordingSubscriber) ID() string { return r.id }

func (r *recordingSubscriber) Notify(_ context.Context, o *order.FinalizedOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
	return nil
}

func (r *recordingSubscriber) received() []*order.FinalizedOrder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*order.FinalizedOrder(nil), r.orders...)
}

func newTestService(t *testing.T) (*Service, *recordingSubscriber) {
	t.Helper()

	nasi, err := menu.New(menu.CategoryFood, "Nasi Goreng", 25000, "")
	require.NoError(t, err)
	nasi.ID = 1
	teh, err := menu.New(menu.CategoryBeverage, "Es Teh", 8000, "")
	require.NoError(t, err)
	teh.ID = 2

	catalog := &stubCatalog{items: map[int]*menu.MenuItem{1: nasi, 2: teh}}
	directory := &stubDirectory{customers: map[int]*database.Customer{
		7: {ID: 7, Name: "Budi", IsMember: true, Tier: pricing.TierGold},
		8: {ID: 8, Name: "Siti", Tier: pricing.TierNone},
	}}

	engine := pricing.NewEngine(config.PricingConfig{
		Tiers:     map[string]int{"silver": 5, "gold": 10, "platinum": 15},
		Promo:     config.PromoConfig{Amount: 20000, MinSubtotal: 100000},
		Voucher:   config.VoucherConfig{Percent: 20, MaxAmount: 50000},
		HappyHour: config.HappyHourConfig{Percent: 25, StartHour: 0, EndHour: 0},
	})

	log := logger.New("order-service-test")
	hub := notify.NewHub(time.Second, log)
	recorder := &recordingSubscriber{id: "recorder"}
	hub.Subscribe(recorder)

	svc := NewService(catalog, directory, &stubSequencer{}, order.NewAggregator(engine), hub, log)
	return svc, recorder
}

func TestCreateOrder_FullFlow(t *testing.T) {
	svc, recorder := newTestService(t)

	req := &CreateOrderRequest{
		CustomerID:  7,
		TableNumber: 4,
		Items: []OrderItemRequest{
			{
				MenuItemID: 1,
				Quantity:   2,
				Customizations: []CustomizationRequest{
					{Kind: menu.KindExtraCheese},
					{Kind: menu.KindLargeSize},
				},
			},
		},
	}

	resp, err := svc.CreateOrder(context.Background(), req, "req-1")
	require.NoError(t, err)

	// (25000 + 5000 + 10000) * 2, gold tier takes 10%
	assert.Equal(t, int64(80000), resp.Subtotal)
	assert.Equal(t, "member-tier", resp.Discount.Policy)
	assert.Equal(t, int64(8000), resp.Discount.Amount)
	assert.Equal(t, int64(72000), resp.Total)
	assert.Contains(t, resp.OrderNumber, "ORD_")
	assert.Equal(t, "ok", resp.Delivery["recorder"])

	received := recorder.received()
	require.Len(t, received, 1)
	assert.Equal(t, resp.OrderNumber, received[0].Number)
	assert.Equal(t, int64(72000), received[0].Total)
}

func TestCreateOrder_SequencesOrderNumbers(t *testing.T) {
	svc, _ := newTestService(t)

	req := &CreateOrderRequest{
		CustomerID: 8,
		Items:      []OrderItemRequest{{MenuItemID: 2, Quantity: 1}},
	}

	first, err := svc.CreateOrder(context.Background(), req, "req-1")
	require.NoError(t, err)
	second, err := svc.CreateOrder(context.Background(), req, "req-2")
	require.NoError(t, err)

	prefix := "ORD_" + time.Now().Format("20060102")
	assert.Equal(t, prefix+"_001", first.OrderNumber)
	assert.Equal(t, prefix+"_002", second.OrderNumber)
}

func TestCreateOrder_UnknownMenuItem(t *testing.T) {
	svc, recorder := newTestService(t)

	req := &CreateOrderRequest{
		CustomerID: 8,
		Items:      []OrderItemRequest{{MenuItemID: 99, Quantity: 1}},
	}

	_, err := svc.CreateOrder(context.Background(), req, "req-1")

	var vErr *menu.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "items[0].menu_item_id", vErr.Field)
	assert.Empty(t, recorder.received())
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	req := &CreateOrderRequest{
		CustomerID: 404,
		Items:      []OrderItemRequest{{MenuItemID: 1, Quantity: 1}},
	}

	_, err := svc.CreateOrder(context.Background(), req, "req-1")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCreateOrder_RejectsBadCustomizations(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name      string
		spec      CustomizationRequest
		wantField string
	}{
		{
			name:      "unknown kind",
			spec:      CustomizationRequest{Kind: "gold-leaf"},
			wantField: "items[0].customizations[0]",
		},
		{
			name:      "topping without name",
			spec:      CustomizationRequest{Kind: menu.KindExtraTopping, Price: 4000},
			wantField: "items[0].customizations[0]",
		},
		{
			name:      "topping with negative price",
			spec:      CustomizationRequest{Kind: menu.KindExtraTopping, Name: "Telur", Price: -1},
			wantField: "items[0].customizations[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &CreateOrderRequest{
				CustomerID: 8,
				Items: []OrderItemRequest{{
					MenuItemID:     1,
					Quantity:       1,
					Customizations: []CustomizationRequest{tt.spec},
				}},
			}

			_, err := svc.CreateOrder(context.Background(), req, "req-1")

			var vErr *menu.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateOrderRequest
		wantField string
	}{
		{
			name:      "missing customer",
			req:       CreateOrderRequest{Items: []OrderItemRequest{{MenuItemID: 1, Quantity: 1}}},
			wantField: "customer_id",
		},
		{
			name:      "negative table",
			req:       CreateOrderRequest{CustomerID: 1, TableNumber: -1, Items: []OrderItemRequest{{MenuItemID: 1, Quantity: 1}}},
			wantField: "table_number",
		},
		{
			name:      "no items",
			req:       CreateOrderRequest{CustomerID: 1},
			wantField: "items",
		},
		{
			name:      "missing menu item id",
			req:       CreateOrderRequest{CustomerID: 1, Items: []OrderItemRequest{{Quantity: 1}}},
			wantField: "items[0].menu_item_id",
		},
		{
			name:      "zero quantity",
			req:       CreateOrderRequest{CustomerID: 1, Items: []OrderItemRequest{{MenuItemID: 1}}},
			wantField: "items[0].quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			var vErr *menu.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}

	valid := CreateOrderRequest{CustomerID: 1, Items: []OrderItemRequest{{MenuItemID: 1, Quantity: 1}}}
	assert.NoError(t, valid.Validate())
}
