package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesRecord struct {
	Amount decimal.Decimal `json:"amount" yaml:"amount" toml:"amount"`
}

// IncentiveSlab is one band of the progressive schedule. Slabs are expected
// to be contiguous and ascending but are not validated.
type IncentiveSlab struct {
	MinThreshold decimal.Decimal `json:"minThreshold" yaml:"minThreshold" toml:"min_threshold"`
	MaxThreshold decimal.Decimal `json:"maxThreshold" yaml:"maxThreshold" toml:"max_threshold"`
	RatePercent  decimal.Decimal `json:"ratePercent" yaml:"ratePercent" toml:"rate_percent"`
}

type Config struct {
	BasePay        decimal.Decimal   `json:"basePay" yaml:"basePay" toml:"base_pay"`
	GSTRatePercent decimal.Decimal   `json:"gstRatePercent" yaml:"gstRatePercent" toml:"gst_rate_percent"`
	Slabs          []IncentiveSlab   `json:"slabs" yaml:"slabs" toml:"slabs"`
	Bonus          decimal.Decimal   `json:"bonus" yaml:"bonus" toml:"bonus"`
	Formulas       map[string]string `json:"formulas,omitempty" yaml:"formulas,omitempty" toml:"formulas"`
}

// Empty reports whether no part of the config was supplied.
func (c Config) Empty() bool {
	return c.BasePay.IsZero() && c.GSTRatePercent.IsZero() && len(c.Slabs) == 0 && c.Bonus.IsZero() && len(c.Formulas) == 0
}

type SalesWindow struct {
	EmployeeCode string
	From         time.Time
	To           time.Time
}

// IncentiveInput is a standalone incentive calculation: an employee's own
// sales, one record list per subordinate, and the config to apply.
type IncentiveInput struct {
	Records      []SalesRecord   `json:"records" yaml:"records" toml:"records"`
	Subordinates [][]SalesRecord `json:"subordinates" yaml:"subordinates" toml:"subordinates"`
	Config       Config          `json:"config" yaml:"config" toml:"config"`
}
