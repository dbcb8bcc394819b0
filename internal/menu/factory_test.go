package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		category    Category
		itemName    string
		basePrice   int64
		description string
		wantField   string
	}{
		{
			name:      "valid food item",
			category:  CategoryFood,
			itemName:  "Nasi Goreng Spesial",
			basePrice: 25000,
		},
		{
			name:      "valid beverage item",
			category:  CategoryBeverage,
			itemName:  "Kopi Susu",
			basePrice: 15000,
		},
		{
			name:        "valid package item",
			category:    CategoryPackage,
			itemName:    "Paket Komplit",
			basePrice:   50000,
			description: "Nasi Goreng + Ayam Goreng + Es Teh",
		},
		{
			name:      "free item is allowed",
			category:  CategoryFood,
			itemName:  "Kerupuk",
			basePrice: 0,
		},
		{
			name:      "unknown category",
			category:  Category("dessert"),
			itemName:  "Es Campur",
			basePrice: 12000,
			wantField: "category",
		},
		{
			name:      "empty name",
			category:  CategoryFood,
			itemName:  "   ",
			basePrice: 10000,
			wantField: "name",
		},
		{
			name:      "negative base price",
			category:  CategoryBeverage,
			itemName:  "Es Teh",
			basePrice: -5000,
			wantField: "base_price",
		},
		{
			name:      "package without bundle description",
			category:  CategoryPackage,
			itemName:  "Paket Hemat",
			basePrice: 40000,
			wantField: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := New(tt.category, tt.itemName, tt.basePrice, tt.description)

			if tt.wantField != "" {
				require.Error(t, err)

				var validationErr *ValidationError
				require.True(t, errors.As(err, &validationErr), "expected *ValidationError, got %T", err)
				assert.Equal(t, tt.wantField, validationErr.Field)
				assert.Nil(t, item)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, item)
			assert.Equal(t, tt.itemName, item.Name)
			assert.Equal(t, tt.category, item.Category)
			assert.Equal(t, tt.basePrice, item.Price())
			assert.Equal(t, []string{tt.itemName}, item.Describe())
		})
	}
}
