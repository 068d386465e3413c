package payslip

import "payslip/internal/layout"

// Earnings component keys.
const (
	EarningBasic          = "basic"
	EarningHRA            = "hra"
	EarningMedical        = "medical"
	EarningConveyance     = "conveyance"
	EarningSpecial        = "special"
	EarningSalesIncentive = "salesIncentive"
)

// Deduction component keys.
const (
	DeductionPF                  = "pf"
	DeductionIncomeTax           = "incomeTax"
	DeductionIncentiveAdjustment = "incentiveAdjustment"
	DeductionSalesRecovery       = "salesRecovery"
)

const (
	SectionEmployeeInfo       layout.SectionID = "employee-info"
	SectionEarningsDeductions layout.SectionID = "earnings-deductions"
	SectionNetPay             layout.SectionID = "net-pay"
	SectionSalaryDetails      layout.SectionID = "salary-details"
	SectionFooter             layout.SectionID = "footer"
)

const (
	FooterText  = "This is a computer generated payslip and does not require a signature."
	titlePrefix = "Payslip for the month of "
)

const (
	headerLines  = 6
	headerGap    = 4.0
	boxPadTop    = 1.0
	boxPadBottom = 1.0
	fontFamily   = "Helvetica"
)

var (
	bodyFont    = layout.Font{Family: fontFamily, Size: 9}
	companyFont = layout.Font{Family: fontFamily, Style: "B", Size: 12}
	titleFont   = layout.Font{Family: fontFamily, Style: "B", Size: 11}
	footerFont  = layout.Font{Family: fontFamily, Style: "I", Size: 8}
)
