package pricing

import "time"

// Tier is a customer membership level
type Tier string

const (
	TierNone     Tier = "none"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// ParseTier maps a stored tier string to a Tier, defaulting to none
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierSilver, TierGold, TierPlatinum:
		return Tier(s)
	}
	return TierNone
}

// Context carries the facts a policy evaluation runs against. It is built
// fresh per evaluation and never mutated by policies.
type Context struct {
	Subtotal    int64
	Tier        Tier
	VoucherCode string
	Now         time.Time
}

// Result is the outcome of a policy evaluation: the discount amount,
// already clamped to [0, subtotal], and the name of the policy applied.
type Result struct {
	Amount int64  `json:"amount"`
	Policy string `json:"policy"`
}

// PolicyNone names the zero-discount result returned when no policy applies
const PolicyNone = "none"

// clamp bounds a raw discount to [0, subtotal]
func clamp(amount, subtotal int64) int64 {
	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}

// percentOf computes pct% of amount using integer arithmetic
func percentOf(amount int64, pct int) int64 {
	return amount * int64(pct) / 100
}
