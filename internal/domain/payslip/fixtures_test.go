package payslip

import (
	"github.com/shopspring/decimal"

	"payslip/internal/layout"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type fixedMeasurer struct{}

func (fixedMeasurer) StringWidth(text string, font layout.Font) float64 {
	w := float64(len([]rune(text))) * font.Size * 0.2
	if font.Style == "B" {
		w *= 1.1
	}
	return w
}

func sampleRequest() Request {
	return Request{
		Employee: Employee{
			Code:        "EMP-0042",
			Name:        "Jane Doe",
			Department:  "Sales",
			JoinDate:    "01-04-2019",
			BankName:    "State Bank",
			BankAccount: "0012345678",
			PAN:         "ABCDE1234F",
			PFNumber:    "MH/BAN/0042",
			UAN:         "100200300400",
		},
		Company: Company{
			Name:    "Acme Traders Pvt Ltd",
			Address: "4th Floor, Harbour View, 12 Marine Drive, Mumbai 400020",
			Phone:   "+91 22 5555 0100",
			Email:   "payroll@acme.example",
			CIN:     "U51909MH2010PTC123456",
		},
		Period: PaymentPeriod{
			Label:       "May 2021",
			WorkingDays: d("31"),
			PayableDays: d("31"),
			LOPDays:     d("0"),
			PaymentMode: "Bank Transfer",
		},
		Earnings: Earnings{
			Standard: Breakdown{
				Components: map[string]decimal.Decimal{
					EarningBasic:      d("50000"),
					EarningHRA:        d("25000"),
					EarningMedical:    d("1250"),
					EarningConveyance: d("1600"),
					EarningSpecial:    d("22150"),
				},
				Total: d("100000"),
			},
			Actual: Breakdown{
				Components: map[string]decimal.Decimal{
					EarningBasic:      d("50000"),
					EarningHRA:        d("25000"),
					EarningMedical:    d("1250"),
					EarningConveyance: d("1600"),
					EarningSpecial:    d("22150"),
				},
				Total: d("100000.00"),
			},
		},
		Deductions: Breakdown{
			Components: map[string]decimal.Decimal{
				DeductionPF:        d("6000"),
				DeductionIncomeTax: d("34000"),
			},
			Total: d("40000.00"),
		},
		NetPay: NetPay{
			Currency:      "INR",
			Amount:        d("60000.00"),
			AmountInWords: "Sixty Thousand Only",
		},
		SalaryDetails: SalaryDetails{
			FixedAnnual:      "12,00,000",
			VariableAnnual:   "1,20,000",
			CTCEffectiveDate: "01-04-2021",
		},
	}
}

func sampleDocument() Document {
	doc, _, err := Prepare(sampleRequest())
	if err != nil {
		panic(err)
	}
	return doc
}

func texts(ins []layout.Instruction) []layout.Text {
	var out []layout.Text
	for _, in := range ins {
		if t, ok := in.(layout.Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func boxes(ins []layout.Instruction) []layout.Box {
	var out []layout.Box
	for _, in := range ins {
		if b, ok := in.(layout.Box); ok {
			out = append(out, b)
		}
	}
	return out
}

func hasText(ins []layout.Instruction, content string) bool {
	for _, t := range texts(ins) {
		if t.Content == content {
			return true
		}
	}
	return false
}
