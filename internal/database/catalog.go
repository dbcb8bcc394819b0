package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"warung-pos/internal/menu"
	"warung-pos/internal/pricing"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// Customer is a stored customer record
type Customer struct {
	ID       int
	Name     string
	Phone    string
	Email    string
	IsMember bool
	Tier     pricing.Tier
}

// CatalogRepository loads and stores menu items and customer records
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a catalog repository
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// InsertMenuItem stores a validated menu item and fills in its assigned ID
func (r *CatalogRepository) InsertMenuItem(ctx context.Context, item *menu.MenuItem) error {
	err := r.db.QueryRow(ctx, InsertMenuItemSQL,
		item.Name, string(item.Category), item.BasePrice, item.Description,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

// GetMenuItem loads one menu item by ID. Rows are rebuilt through the
// factory so stored data goes through the same validation as new data.
func (r *CatalogRepository) GetMenuItem(ctx context.Context, id int) (*menu.MenuItem, error) {
	var (
		name, category, description string
		basePrice                   int64
		itemID                      int
	)

	err := r.db.QueryRow(ctx, GetMenuItemSQL, id).Scan(&itemID, &name, &category, &basePrice, &description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load menu item: %w", err)
	}

	item, err := menu.New(menu.Category(category), name, basePrice, description)
	if err != nil {
		return nil, fmt.Errorf("stored menu item %d is invalid: %w", id, err)
	}
	item.ID = itemID

	return item, nil
}

// ListMenuItems loads the full catalog ordered by category and name
func (r *CatalogRepository) ListMenuItems(ctx context.Context) ([]*menu.MenuItem, error) {
	rows, err := r.db.Query(ctx, ListMenuItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	return scanMenuItems(rows)
}

// ListMenuItemsByCategory loads one category of the catalog
func (r *CatalogRepository) ListMenuItemsByCategory(ctx context.Context, category menu.Category) ([]*menu.MenuItem, error) {
	rows, err := r.db.Query(ctx, ListMenuItemsByTypeSQL, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	return scanMenuItems(rows)
}

func scanMenuItems(rows pgx.Rows) ([]*menu.MenuItem, error) {
	var items []*menu.MenuItem

	for rows.Next() {
		var (
			name, category, description string
			basePrice                   int64
			id                          int
		)
		if err := rows.Scan(&id, &name, &category, &basePrice, &description); err != nil {
			return nil, err
		}

		item, err := menu.New(menu.Category(category), name, basePrice, description)
		if err != nil {
			return nil, fmt.Errorf("stored menu item %d is invalid: %w", id, err)
		}
		item.ID = id
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetCustomer loads a customer record, including the membership tier used
// for pricing. Non-members always carry the none tier.
func (r *CatalogRepository) GetCustomer(ctx context.Context, id int) (*Customer, error) {
	var (
		c    Customer
		tier string
	)

	err := r.db.QueryRow(ctx, GetCustomerSQL, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.IsMember, &tier,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	c.Tier = pricing.TierNone
	if c.IsMember {
		c.Tier = pricing.ParseTier(tier)
	}

	return &c, nil
}
