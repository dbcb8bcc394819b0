package pricing

import "warung-pos/internal/config"

// Policy is a single discount rule. Applies reports whether the rule can
// fire for the given context; Compute returns the clamped discount.
type Policy interface {
	Name() string
	Applies(ctx Context) bool
	Compute(ctx Context) Result
}

// HappyHour gives a percentage off inside a daily time window.
// The window is inclusive at the start hour and exclusive at the end hour.
type HappyHour struct {
	Percent   int
	StartHour int
	EndHour   int
}

func (p HappyHour) Name() string { return "happy-hour" }

func (p HappyHour) Applies(ctx Context) bool {
	hour := ctx.Now.Hour()
	return hour >= p.StartHour && hour < p.EndHour
}

func (p HappyHour) Compute(ctx Context) Result {
	return Result{
		Amount: clamp(percentOf(ctx.Subtotal, p.Percent), ctx.Subtotal),
		Policy: p.Name(),
	}
}

// MemberTier gives a percentage off by membership tier
type MemberTier struct {
	Rates map[string]int
}

func (p MemberTier) Name() string { return "member-tier" }

func (p MemberTier) Applies(ctx Context) bool {
	if ctx.Tier == TierNone {
		return false
	}
	_, ok := p.Rates[string(ctx.Tier)]
	return ok
}

func (p MemberTier) Compute(ctx Context) Result {
	pct := p.Rates[string(ctx.Tier)]
	return Result{
		Amount: clamp(percentOf(ctx.Subtotal, pct), ctx.Subtotal),
		Policy: p.Name(),
	}
}

// Promo gives a flat amount off once the subtotal reaches a minimum
type Promo struct {
	Amount      int64
	MinSubtotal int64
}

func (p Promo) Name() string { return "promo" }

func (p Promo) Applies(ctx Context) bool {
	return ctx.Subtotal >= p.MinSubtotal
}

func (p Promo) Compute(ctx Context) Result {
	return Result{
		Amount: clamp(p.Amount, ctx.Subtotal),
		Policy: p.Name(),
	}
}

// Voucher gives a percentage off capped at a maximum amount, when the
// order carries a voucher code
type Voucher struct {
	Percent   int
	MaxAmount int64
}

func (p Voucher) Name() string { return "voucher" }

func (p Voucher) Applies(ctx Context) bool {
	return ctx.VoucherCode != ""
}

func (p Voucher) Compute(ctx Context) Result {
	amount := percentOf(ctx.Subtotal, p.Percent)
	if amount > p.MaxAmount {
		amount = p.MaxAmount
	}
	return Result{
		Amount: clamp(amount, ctx.Subtotal),
		Policy: p.Name(),
	}
}

// Engine evaluates the policy set in a fixed precedence order.
// Exactly one policy applies per order: the first applicable one wins.
type Engine struct {
	policies []Policy
}

// NewEngine builds the engine from configured parameters. Precedence is
// happy-hour, then member-tier, then voucher, then promo: time-window
// rules outrank tier rules, and a code the customer presents outranks the
// automatic order-size promo.
func NewEngine(cfg config.PricingConfig) *Engine {
	return &Engine{
		policies: []Policy{
			HappyHour{Percent: cfg.HappyHour.Percent, StartHour: cfg.HappyHour.StartHour, EndHour: cfg.HappyHour.EndHour},
			MemberTier{Rates: cfg.Tiers},
			Voucher{Percent: cfg.Voucher.Percent, MaxAmount: cfg.Voucher.MaxAmount},
			Promo{Amount: cfg.Promo.Amount, MinSubtotal: cfg.Promo.MinSubtotal},
		},
	}
}

// Evaluate runs the precedence order and returns the first applicable
// policy's result, or a zero discount named "none"
func (e *Engine) Evaluate(ctx Context) Result {
	for _, p := range e.policies {
		if p.Applies(ctx) {
			return p.Compute(ctx)
		}
	}
	return Result{Amount: 0, Policy: PolicyNone}
}

// EvaluateWith forces a single policy instead of running the precedence
// order. A policy that does not apply yields a zero discount named "none".
func (e *Engine) EvaluateWith(p Policy, ctx Context) Result {
	if p == nil || !p.Applies(ctx) {
		return Result{Amount: 0, Policy: PolicyNone}
	}
	return p.Compute(ctx)
}
