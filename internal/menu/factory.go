package menu

import (
	"fmt"
	"strings"
)

// ValidationError reports a rejected catalog input. The caller must fix the
// named field and retry; nothing is auto-corrected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// New validates raw attributes and constructs a typed menu item.
// Every failure is a *ValidationError naming the offending field.
func New(category Category, name string, basePrice int64, description string) (*MenuItem, error) {
	if !category.Valid() {
		return nil, &ValidationError{
			Field:  "category",
			Reason: fmt.Sprintf("must be one of: %s, %s, %s", CategoryFood, CategoryBeverage, CategoryPackage),
		}
	}

	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{
			Field:  "name",
			Reason: "name is required",
		}
	}

	if len(name) > 100 {
		return nil, &ValidationError{
			Field:  "name",
			Reason: "name must not exceed 100 characters",
		}
	}

	if basePrice < 0 {
		return nil, &ValidationError{
			Field:  "base_price",
			Reason: "base price must be non-negative",
		}
	}

	// Packages bundle several items, so the bundle must be spelled out
	if category == CategoryPackage && strings.TrimSpace(description) == "" {
		return nil, &ValidationError{
			Field:  "description",
			Reason: "package items must describe the bundled items",
		}
	}

	return &MenuItem{
		Name:        name,
		Category:    category,
		BasePrice:   basePrice,
		Description: description,
	}, nil
}
