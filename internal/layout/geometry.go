// Package layout places text, rules and boxes on an absolutely positioned
// page. It emits an instruction stream and knows nothing about the backend
// that draws it.
package layout

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

type Font struct {
	Family string
	Style  string
	Size   float64
}

// Bold returns f with the bold style.
func (f Font) Bold() Font {
	f.Style = "B"
	return f
}

// Instruction is one of Text, Rule or Box.
type Instruction interface {
	instruction()
}

// Text is anchored at X on the baseline Y; Align says which edge X names.
type Text struct {
	Content string
	X, Y    float64
	Align   Align
	Font    Font
}

type Rule struct {
	X1, Y1, X2, Y2 float64
}

type Box struct {
	X, Y, W, H float64
}

func (Text) instruction() {}
func (Rule) instruction() {}
func (Box) instruction()  {}

// Measurer reports the rendered width of text in page units.
type Measurer interface {
	StringWidth(text string, font Font) float64
}

type Page struct {
	Width        float64
	Height       float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	LineHeight   float64
	RowHeight    float64
	CellPadding  float64
	BaselineDrop float64
}

// A4 is a portrait A4 page in millimetres.
func A4() Page {
	return Page{
		Width:        210,
		Height:       297,
		MarginLeft:   10,
		MarginRight:  10,
		MarginTop:    12,
		LineHeight:   5,
		RowHeight:    6,
		CellPadding:  2,
		BaselineDrop: 4,
	}
}

// ContentWidth is the usable width between the margins.
func (p Page) ContentWidth() float64 {
	return p.Width - p.MarginLeft - p.MarginRight
}

type SectionID string

type SectionHeight struct {
	ID     SectionID
	Height float64
}

// Offsets reduces stacked sections into the y origin of each one, starting
// at top with no gaps.
func Offsets(top float64, sections []SectionHeight) map[SectionID]float64 {
	out := make(map[SectionID]float64, len(sections))
	y := top
	for _, section := range sections {
		out[section.ID] = y
		y += section.Height
	}
	return out
}

func Total(sections []SectionHeight) float64 {
	total := 0.0
	for _, section := range sections {
		total += section.Height
	}
	return total
}

// Document is what a rendering backend receives.
type Document struct {
	Page         Page
	Title        string
	Subject      string
	Instructions []Instruction
}
