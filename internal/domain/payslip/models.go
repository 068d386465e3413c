package payslip

import (
	"github.com/shopspring/decimal"

	"payslip/internal/domain/payroll"
)

type Company struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Address string `json:"address" yaml:"address" toml:"address"`
	Phone   string `json:"phone" yaml:"phone" toml:"phone"`
	Email   string `json:"email" yaml:"email" toml:"email"`
	CIN     string `json:"cin" yaml:"cin" toml:"cin"`
}

func (c Company) IsZero() bool {
	return c == Company{}
}

// Employee fields are display strings; nothing here is validated.
type Employee struct {
	Code        string `json:"code" yaml:"code" toml:"code"`
	Name        string `json:"name" yaml:"name" toml:"name"`
	Department  string `json:"department" yaml:"department" toml:"department"`
	JoinDate    string `json:"joinDate" yaml:"joinDate" toml:"join_date"`
	BankName    string `json:"bankName" yaml:"bankName" toml:"bank_name"`
	BankAccount string `json:"bankAccount" yaml:"bankAccount" toml:"bank_account"`
	PAN         string `json:"pan" yaml:"pan" toml:"pan"`
	PFNumber    string `json:"pfNumber" yaml:"pfNumber" toml:"pf_number"`
	UAN         string `json:"uan" yaml:"uan" toml:"uan"`
	ESINumber   string `json:"esiNumber" yaml:"esiNumber" toml:"esi_number"`
}

type PaymentPeriod struct {
	Label       string          `json:"label" yaml:"label" toml:"label"`
	WorkingDays decimal.Decimal `json:"workingDays" yaml:"workingDays" toml:"working_days"`
	PayableDays decimal.Decimal `json:"payableDays" yaml:"payableDays" toml:"payable_days"`
	LOPDays     decimal.Decimal `json:"lopDays" yaml:"lopDays" toml:"lop_days"`
	PaymentMode string          `json:"paymentMode" yaml:"paymentMode" toml:"payment_mode"`
}

// Breakdown maps a component key to its amount. Total is supplied by the
// caller and is not recomputed from the components.
type Breakdown struct {
	Components map[string]decimal.Decimal `json:"components" yaml:"components" toml:"components"`
	Total      decimal.Decimal            `json:"total" yaml:"total" toml:"total"`
}

func (b Breakdown) Amount(key string) decimal.Decimal {
	return b.Components[key]
}

func (b Breakdown) clone() Breakdown {
	out := Breakdown{Components: make(map[string]decimal.Decimal, len(b.Components)), Total: b.Total}
	for k, v := range b.Components {
		out.Components[k] = v
	}
	return out
}

type Earnings struct {
	Standard Breakdown `json:"standard" yaml:"standard" toml:"standard"`
	Actual   Breakdown `json:"actual" yaml:"actual" toml:"actual"`
}

type NetPay struct {
	Currency      string          `json:"currency" yaml:"currency" toml:"currency"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount" toml:"amount"`
	AmountInWords string          `json:"amountInWords" yaml:"amountInWords" toml:"amount_in_words"`
}

type SalaryDetails struct {
	FixedAnnual      string `json:"fixedAnnual" yaml:"fixedAnnual" toml:"fixed_annual"`
	VariableAnnual   string `json:"variableAnnual" yaml:"variableAnnual" toml:"variable_annual"`
	CTCEffectiveDate string `json:"ctcEffectiveDate" yaml:"ctcEffectiveDate" toml:"ctc_effective_date"`
}

// Request is everything a caller hands over for one payslip.
type Request struct {
	Config           payroll.Config          `json:"config" yaml:"config" toml:"config"`
	Sales            []payroll.SalesRecord   `json:"sales" yaml:"sales" toml:"sales"`
	SubordinateSales [][]payroll.SalesRecord `json:"subordinateSales" yaml:"subordinateSales" toml:"subordinate_sales"`
	Employee         Employee                `json:"employee" yaml:"employee" toml:"employee"`
	Company          Company                 `json:"company" yaml:"company" toml:"company"`
	Period           PaymentPeriod           `json:"period" yaml:"period" toml:"period"`
	Earnings         Earnings                `json:"earnings" yaml:"earnings" toml:"earnings"`
	Deductions       Breakdown               `json:"deductions" yaml:"deductions" toml:"deductions"`
	NetPay           NetPay                  `json:"netPay" yaml:"netPay" toml:"net_pay"`
	SalaryDetails    SalaryDetails           `json:"salaryDetails" yaml:"salaryDetails" toml:"salary_details"`
}

// WithDefaults fills the company and payroll config from operator defaults
// when the request leaves them out entirely.
func (r Request) WithDefaults(company Company, cfg payroll.Config) Request {
	if r.Company.IsZero() {
		r.Company = company
	}
	if r.Config.Empty() {
		r.Config = cfg
	}
	return r
}

// Document is the prepared dataset the assembler lays out.
type Document struct {
	Employee      Employee
	Company       Company
	Period        PaymentPeriod
	Earnings      Earnings
	Deductions    Breakdown
	NetPay        NetPay
	SalaryDetails SalaryDetails
	Incentive     decimal.Decimal
}

// Reconciliation compares the supplied net pay with actual earnings less
// deductions. The supplied figure is always the one printed.
type Reconciliation struct {
	Supplied   decimal.Decimal
	Expected   decimal.Decimal
	Difference decimal.Decimal
	Matches    bool
}
