package payroll

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// slabState is the accumulator carried across the slab fold.
type slabState struct {
	remaining decimal.Decimal
	total     decimal.Decimal
}

// ComputeIncentive returns the slab-based incentive on the GST-exclusive
// value of records, rounded to a whole currency unit.
//
// Slabs are applied in the order given. Only the first slab is measured from
// zero; every later slab contributes min(remaining, max) - min, floored at
// zero, while the unfloored difference is taken off the remaining sales.
func ComputeIncentive(records []SalesRecord, cfg Config) decimal.Decimal {
	if cfg.GSTRatePercent.IsZero() {
		return decimal.Zero
	}

	gross := decimal.Zero
	for _, record := range records {
		gross = gross.Add(record.Amount)
	}
	net := NetSales(gross, cfg.GSTRatePercent)

	if len(cfg.Slabs) == 0 {
		return decimal.Zero
	}

	state := slabState{remaining: net, total: decimal.Zero}
	for i, slab := range cfg.Slabs {
		state = applySlab(state, i, slab)
		if !state.remaining.IsPositive() {
			break
		}
	}
	return roundHalfUp(state.total)
}

// roundHalfUp rounds to a whole unit with ties going toward positive
// infinity, so -2.5 becomes -2 and 2.5 becomes 3.
func roundHalfUp(v decimal.Decimal) decimal.Decimal {
	return v.Add(half).Floor()
}

// NetSales backs GST out of a gross amount.
func NetSales(gross, gstRatePercent decimal.Decimal) decimal.Decimal {
	return gross.Div(decimal.NewFromInt(1).Add(gstRatePercent.Div(hundred)))
}

func applySlab(state slabState, index int, slab IncentiveSlab) slabState {
	if state.remaining.LessThanOrEqual(slab.MinThreshold) {
		return state
	}

	capped := decimal.Min(state.remaining, slab.MaxThreshold)
	consumed := capped
	base := capped
	if index > 0 {
		consumed = capped.Sub(slab.MinThreshold)
		base = decimal.Max(consumed, decimal.Zero)
	}

	return slabState{
		remaining: state.remaining.Sub(consumed),
		total:     state.total.Add(base.Mul(slab.RatePercent).Div(hundred)),
	}
}

// TeamSales concatenates an employee's own records with those of every
// subordinate so the incentive is computed over the whole team in one pass.
func TeamSales(self []SalesRecord, subordinates ...[]SalesRecord) []SalesRecord {
	size := len(self)
	for _, records := range subordinates {
		size += len(records)
	}
	out := make([]SalesRecord, 0, size)
	out = append(out, self...)
	for _, records := range subordinates {
		out = append(out, records...)
	}
	return out
}

type IncentiveSummary struct {
	Records    int             `json:"records"`
	GrossSales decimal.Decimal `json:"grossSales"`
	NetSales   decimal.Decimal `json:"netSales"`
	Incentive  decimal.Decimal `json:"incentive"`
}

// Summarize reports the incentive with the sales figures it was computed
// from. NetSales is rounded to two decimals for display; with a zero GST
// rate it equals GrossSales.
func Summarize(records []SalesRecord, cfg Config) IncentiveSummary {
	gross := decimal.Zero
	for _, record := range records {
		gross = gross.Add(record.Amount)
	}
	net := gross
	if !cfg.GSTRatePercent.IsZero() {
		net = NetSales(gross, cfg.GSTRatePercent).Round(2)
	}
	return IncentiveSummary{
		Records:    len(records),
		GrossSales: gross,
		NetSales:   net,
		Incentive:  ComputeIncentive(records, cfg),
	}
}
