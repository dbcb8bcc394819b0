package database

// Catalog queries
const (
	InsertMenuItemSQL = `
		INSERT INTO menu_items (name, type, base_price, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	GetMenuItemSQL = `
		SELECT id, name, type, base_price, description
		FROM menu_items WHERE id = $1`

	ListMenuItemsSQL = `
		SELECT id, name, type, base_price, description
		FROM menu_items
		ORDER BY type, name`

	ListMenuItemsByTypeSQL = `
		SELECT id, name, type, base_price, description
		FROM menu_items
		WHERE type = $1
		ORDER BY name`
)

// Customer queries
const (
	GetCustomerSQL = `
		SELECT id, name, phone, email, is_member, tier
		FROM customers WHERE id = $1`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, number, customer_id, table_number, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, item_id, quantity, price, notes)
		VALUES ($1, $2, $3, $4, $5)`

	NextOrderSequenceSQL = `
		INSERT INTO order_sequences (day, value)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET value = order_sequences.value + 1
		RETURNING value`
)
