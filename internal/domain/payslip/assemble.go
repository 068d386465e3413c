package payslip

import (
	"strings"

	"github.com/shopspring/decimal"

	"payslip/internal/layout"
)

type section struct {
	id     layout.SectionID
	height float64
	draw   func(*layout.Frame, Document)
}

// sections is the fixed order of ruled boxes below the header. Every payslip
// has all of them regardless of content.
var sections = []section{
	{SectionEmployeeInfo, rows(5), drawEmployeeInfo},
	{SectionEarningsDeductions, rows(8), drawEarningsDeductions},
	{SectionNetPay, rows(3), drawNetPay},
	{SectionSalaryDetails, rows(1), drawSalaryDetails},
	{SectionFooter, boxPadTop + Page().LineHeight + boxPadBottom, drawFooter},
}

func rows(n int) float64 {
	return boxPadTop + float64(n)*Page().RowHeight + boxPadBottom
}

func Page() layout.Page {
	return layout.A4()
}

func HeaderHeight() float64 {
	return headerLines*Page().LineHeight + headerGap
}

// Plan lists the boxed sections with their heights, top to bottom.
func Plan() []layout.SectionHeight {
	out := make([]layout.SectionHeight, 0, len(sections))
	for _, s := range sections {
		out = append(out, layout.SectionHeight{ID: s.id, Height: s.height})
	}
	return out
}

// Assemble lays out doc and returns the draw instructions. It is a pure
// function of doc and the measurer's metrics.
func Assemble(doc Document, m layout.Measurer) []layout.Instruction {
	engine := layout.New(Page(), m, bodyFont)
	page := engine.Page()

	drawHeader(engine, page, doc)
	for _, s := range sections {
		box := page.DrawBoxedSection(s.height)
		box.Advance(boxPadTop)
		s.draw(box, doc)
	}
	return engine.Instructions()
}

func drawHeader(engine *layout.Engine, page *layout.Frame, doc Document) {
	company := doc.Company
	page.PlaceRightAlignedLine(company.Name, companyFont)
	for _, line := range engine.Wrap(company.Address, bodyFont, page.Width()/2, 2) {
		page.PlaceRightAlignedLine(line, bodyFont)
	}
	page.PlaceRightAlignedLine(contactLine(company), bodyFont)
	page.PlaceRightAlignedLine(prefixed("CIN: ", company.CIN), bodyFont)
	page.PlaceCenteredLine(titlePrefix+doc.Period.Label, titleFont)
	page.Advance(headerGap)
}

func contactLine(c Company) string {
	var parts []string
	if c.Phone != "" {
		parts = append(parts, "Phone: "+c.Phone)
	}
	if c.Email != "" {
		parts = append(parts, "Email: "+c.Email)
	}
	return strings.Join(parts, " | ")
}

func prefixed(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}

func drawEmployeeInfo(box *layout.Frame, doc Document) {
	e, p := doc.Employee, doc.Period
	grid := [][]layout.Field{
		{{Label: "Employee Code", Value: e.Code}, {Label: "Payment Mode", Value: p.PaymentMode}, {Label: "Working Days", Value: days(p.WorkingDays)}},
		{{Label: "Name", Value: e.Name}, {Label: "Bank Name", Value: e.BankName}, {Label: "Payable Days", Value: days(p.PayableDays)}},
		{{Label: "Department", Value: e.Department}, {Label: "Bank A/C No.", Value: e.BankAccount}, {Label: "LOP Days", Value: days(p.LOPDays)}},
		{{Label: "Date of Joining", Value: e.JoinDate}, {Label: "PAN", Value: e.PAN}, {Label: "ESI No.", Value: e.ESINumber}},
		{{}, {Label: "PF No.", Value: e.PFNumber}, {Label: "UAN", Value: e.UAN}},
	}
	for _, row := range grid {
		box.PlaceLabeledRow(row, 3, 0)
	}
}

var earningLines = []struct{ key, label string }{
	{EarningBasic, "Basic"},
	{EarningHRA, "HRA"},
	{EarningMedical, "Medical Allowance"},
	{EarningConveyance, "Conveyance Allowance"},
	{EarningSpecial, "Special Allowance"},
	{EarningSalesIncentive, "Sales Incentive"},
}

// Two trailing slots stay blank so both sides have six rows.
var deductionLines = []struct{ key, label string }{
	{DeductionPF, "Provident Fund"},
	{DeductionIncomeTax, "Income Tax"},
	{DeductionIncentiveAdjustment, "Incentive Adjustment"},
	{DeductionSalesRecovery, "Sales Recovery"},
	{},
	{},
}

var earningsTable = layout.Table{
	Headers:   []string{"Earnings", "Standard", "Actual", "Deductions", "Amount"},
	Fractions: []float64{0.26, 0.16, 0.16, 0.26, 0.16},
	Numeric:   []int{1, 2, 4},
}

func drawEarningsDeductions(box *layout.Frame, doc Document) {
	std, actual, ded := doc.Earnings.Standard, doc.Earnings.Actual, doc.Deductions

	table := earningsTable
	table.Rows = make([][]string, 0, len(earningLines))
	for i, earning := range earningLines {
		deduction := deductionLines[i]
		dedAmount := ""
		if deduction.key != "" {
			dedAmount = money(ded.Amount(deduction.key))
		}
		table.Rows = append(table.Rows, []string{
			earning.label,
			money(std.Amount(earning.key)),
			money(actual.Amount(earning.key)),
			deduction.label,
			dedAmount,
		})
	}
	table.Totals = []string{"Total Earnings", money(std.Total), money(actual.Total), "Total Deductions", money(ded.Total)}
	box.DrawTable(table)
}

func drawNetPay(box *layout.Frame, doc Document) {
	n := doc.NetPay
	box.PlaceLabeledRow([]layout.Field{{Label: "Currency", Value: n.Currency}}, 1, 0)
	box.PlaceLabeledRow([]layout.Field{{Label: "Net Pay", Value: money(n.Amount)}}, 1, 0)
	box.PlaceLabeledRow([]layout.Field{{Label: "Amount in Words", Value: n.AmountInWords}}, 1, 0)
}

func drawSalaryDetails(box *layout.Frame, doc Document) {
	s := doc.SalaryDetails
	box.PlaceLabeledRow([]layout.Field{
		{Label: "Fixed Annual Salary", Value: s.FixedAnnual},
		{Label: "Variable Annual Salary", Value: s.VariableAnnual},
		{Label: "CTC Effective Date", Value: s.CTCEffectiveDate},
	}, 3, 0)
}

func drawFooter(box *layout.Frame, _ Document) {
	box.PlaceCenteredLine(FooterText, footerFont)
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func days(v decimal.Decimal) string {
	return v.String()
}
