package catalog

// The plan catalog is fixed at process start. Changing plans means shipping
// new configuration, not mutating state at runtime, so the catalog is safe
// to share between goroutines without synchronization.

const (
	FreePlanName   = "Free"
	FreeTokenLimit = 500
)

type PlanDefinition struct {
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	TokenLimit   int64    `json:"token_limit"`
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
}

type Catalog struct {
	plans  []PlanDefinition
	byName map[string]PlanDefinition
}

func New(plans []PlanDefinition) *Catalog {
	c := &Catalog{
		byName: make(map[string]PlanDefinition, len(plans)),
	}
	for _, p := range plans {
		if _, dup := c.byName[p.Name]; dup {
			continue
		}
		c.plans = append(c.plans, p)
		c.byName[p.Name] = p
	}
	return c
}

func (c *Catalog) Lookup(name string) (PlanDefinition, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// List returns plans in insertion order.
func (c *Catalog) List() []PlanDefinition {
	out := make([]PlanDefinition, len(c.plans))
	copy(out, c.plans)
	return out
}

// Default returns the built-in paid tiers. The Free tier is implicit: it is
// never purchasable and is represented by FreePlanName/FreeTokenLimit.
func Default() *Catalog {
	return New([]PlanDefinition{
		{
			Name:         "Basic",
			Price:        99000,
			TokenLimit:   10000,
			DurationDays: 30,
			Features: []string{
				"10,000 tokens/month",
				"GPT-3.5 Turbo access",
				"Basic chat history",
				"Email support",
			},
		},
		{
			Name:         "Premium",
			Price:        199000,
			TokenLimit:   50000,
			DurationDays: 30,
			Features: []string{
				"50,000 tokens/month",
				"GPT-4 access",
				"Full chat history",
				"Priority support",
				"Custom AI personality",
			},
		},
	})
}

// FreePlan is the synthetic definition used by analytics and status reporting.
func FreePlan() PlanDefinition {
	return PlanDefinition{
		Name:       FreePlanName,
		TokenLimit: FreeTokenLimit,
		Features:   []string{"500 tokens", "Basic chat", "Community support"},
	}
}
