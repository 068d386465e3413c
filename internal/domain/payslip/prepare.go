package payslip

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"payslip/internal/domain/payroll"
)

// Prepare turns a request into the dataset that gets laid out:
//   - standard components missing from the request are derived from the
//     config formulas over the base pay;
//   - the incentive over the team's sales plus the configured bonus replaces
//     the actual sales-incentive component, and the actual total moves by
//     the same delta;
//   - net pay is checked against actual earnings less deductions but never
//     replaced.
func Prepare(req Request) (Document, Reconciliation, error) {
	doc := Document{
		Employee:      req.Employee,
		Company:       req.Company,
		Period:        req.Period,
		Earnings:      Earnings{Standard: req.Earnings.Standard.clone(), Actual: req.Earnings.Actual.clone()},
		Deductions:    req.Deductions.clone(),
		NetPay:        req.NetPay,
		SalaryDetails: req.SalaryDetails,
	}

	if err := deriveStandard(&doc.Earnings.Standard, req.Config); err != nil {
		return Document{}, Reconciliation{}, err
	}

	records := payroll.TeamSales(req.Sales, req.SubordinateSales...)
	doc.Incentive = payroll.ComputeIncentive(records, req.Config)
	if len(records) > 0 || !req.Config.Bonus.IsZero() {
		folded := doc.Incentive.Add(req.Config.Bonus)
		actual := &doc.Earnings.Actual
		previous := actual.Components[EarningSalesIncentive]
		actual.Components[EarningSalesIncentive] = folded
		actual.Total = actual.Total.Add(folded).Sub(previous)
	}

	return doc, Reconcile(doc), nil
}

func deriveStandard(standard *Breakdown, cfg payroll.Config) error {
	if len(cfg.Formulas) == 0 {
		return nil
	}
	keys := make([]string, 0, len(cfg.Formulas))
	for key := range cfg.Formulas {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	derived := false
	for _, key := range keys {
		if _, ok := standard.Components[key]; ok {
			continue
		}
		value, err := payroll.EvalFormula(cfg.Formulas[key], cfg.BasePay)
		if err != nil {
			return fmt.Errorf("%w: component %s: %w", ErrFormula, key, err)
		}
		standard.Components[key] = value.Round(2)
		derived = true
	}
	if derived && standard.Total.IsZero() {
		total := decimal.Zero
		for _, v := range standard.Components {
			total = total.Add(v)
		}
		standard.Total = total
	}
	return nil
}

// Reconcile compares net pay to the component totals at two decimals.
func Reconcile(doc Document) Reconciliation {
	expected := doc.Earnings.Actual.Total.Sub(doc.Deductions.Total)
	supplied := doc.NetPay.Amount
	return Reconciliation{
		Supplied:   supplied,
		Expected:   expected,
		Difference: supplied.Sub(expected),
		Matches:    supplied.Round(2).Equal(expected.Round(2)),
	}
}
