package layout

import (
	"testing"
	"unicode/utf8"
)

// fixedMeasurer gives every rune the same advance, scaled by font size and
// widened for bold.
type fixedMeasurer struct{}

func (fixedMeasurer) StringWidth(text string, font Font) float64 {
	w := float64(utf8.RuneCountInString(text)) * font.Size * 0.2
	if font.Style == "B" {
		w *= 1.1
	}
	return w
}

var body = Font{Family: "Helvetica", Size: 10}

func newEngine() *Engine {
	return New(A4(), fixedMeasurer{}, body)
}

func texts(ins []Instruction) []Text {
	var out []Text
	for _, in := range ins {
		if t, ok := in.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestPlaceRightAlignedLineAdvancesCursor(t *testing.T) {
	e := newEngine()
	page := e.Page()
	start := page.Y()
	page.PlaceRightAlignedLine("Acme Ltd", body.Bold())
	if page.Y() != start+A4().LineHeight {
		t.Fatalf("expected cursor %v, got %v", start+A4().LineHeight, page.Y())
	}
	got := texts(e.Instructions())
	if len(got) != 1 {
		t.Fatalf("expected one text, got %d", len(got))
	}
	if got[0].Align != AlignRight || got[0].X != 200 {
		t.Fatalf("unexpected placement: %+v", got[0])
	}
}

func TestPlaceLabeledRowSeparatesLabelAndValue(t *testing.T) {
	e := newEngine()
	page := e.Page()
	page.PlaceLabeledRow([]Field{
		{Label: "Code", Value: "E-1"},
		{Label: "A rather long label for a slot", Value: "x"},
		{Label: "", Value: "ignored"},
	}, 3, 0)

	got := texts(e.Instructions())
	if len(got) != 4 {
		t.Fatalf("expected 4 texts, got %d: %+v", len(got), got)
	}
	for i := 0; i < len(got); i += 2 {
		label, value := got[i], got[i+1]
		end := label.X + fixedMeasurer{}.StringWidth(label.Content, label.Font)
		if value.X != end {
			t.Fatalf("value %q starts at %v, label ends at %v", value.Content, value.X, end)
		}
		if value.Content[:2] != ": " {
			t.Fatalf("expected value to carry the colon, got %q", value.Content)
		}
	}
	slot := A4().ContentWidth() / 3
	if got[2].X != A4().MarginLeft+slot+A4().CellPadding {
		t.Fatalf("second slot at %v, expected %v", got[2].X, A4().MarginLeft+slot+A4().CellPadding)
	}
	if page.Y() != A4().MarginTop+A4().RowHeight {
		t.Fatalf("expected one row advance, got %v", page.Y())
	}
}

func TestBoxedSectionsStackWithoutGaps(t *testing.T) {
	plan := []SectionHeight{{ID: "a", Height: 30}, {ID: "b", Height: 50}, {ID: "c", Height: 12}}
	e := newEngine()
	page := e.Page()
	page.Advance(40)
	for _, section := range plan {
		inner := page.DrawBoxedSection(section.Height)
		inner.PlaceLabeledRow([]Field{{Label: "k", Value: "v"}}, 1, 0)
	}

	offsets := Offsets(A4().MarginTop+40, plan)
	var boxes []Box
	for _, in := range e.Instructions() {
		if b, ok := in.(Box); ok {
			boxes = append(boxes, b)
		}
	}
	if len(boxes) != len(plan) {
		t.Fatalf("expected %d boxes, got %d", len(plan), len(boxes))
	}
	for i, section := range plan {
		if boxes[i].Y != offsets[section.ID] {
			t.Fatalf("box %s at %v, expected %v", section.ID, boxes[i].Y, offsets[section.ID])
		}
		if boxes[i].W != A4().ContentWidth() {
			t.Fatalf("box %s width %v", section.ID, boxes[i].W)
		}
	}
	if page.Y() != A4().MarginTop+40+Total(plan) {
		t.Fatalf("expected cursor after boxes at %v, got %v", A4().MarginTop+40+Total(plan), page.Y())
	}
}

func TestDrawTableWithoutRows(t *testing.T) {
	e := newEngine()
	box := e.Page().DrawBoxedSection(40)
	box.DrawTable(Table{
		Headers:   []string{"Earnings", "Standard", "Actual", "Deductions", "Amount"},
		Fractions: []float64{0.28, 0.16, 0.16, 0.24, 0.16},
		Numeric:   []int{1, 2, 4},
		Totals:    []string{"Total", "1.00", "2.00", "Total", "3.00"},
	})

	var verticals, horizontals int
	for _, in := range e.Instructions() {
		r, ok := in.(Rule)
		if !ok {
			continue
		}
		if r.X1 == r.X2 {
			verticals++
			if r.Y1 != box.Top() || r.Y2 != box.Top()+40 {
				t.Fatalf("separator does not span the section: %+v", r)
			}
		} else {
			horizontals++
		}
	}
	if verticals != 4 || horizontals != 1 {
		t.Fatalf("expected 4 separators and 1 rule, got %d and %d", verticals, horizontals)
	}
	if got := len(texts(e.Instructions())); got != 10 {
		t.Fatalf("expected header and totals only, got %d texts", got)
	}
	if box.Y() != box.Top()+2*A4().RowHeight {
		t.Fatalf("expected two rows of advance, got %v", box.Y()-box.Top())
	}
}

func TestDrawTableAlignsNumericColumnsByIndex(t *testing.T) {
	e := newEngine()
	box := e.Page().DrawBoxedSection(30)
	box.DrawTable(Table{
		Headers:   []string{"Name", "Amount"},
		Fractions: []float64{0.5, 0.5},
		Numeric:   []int{1},
		Rows:      [][]string{{"100.00", "Basic"}},
	})
	for _, tx := range texts(e.Instructions()) {
		switch tx.Content {
		case "Name", "100.00":
			if tx.Align != AlignLeft {
				t.Fatalf("%q should be left aligned", tx.Content)
			}
		case "Amount", "Basic":
			if tx.Align != AlignRight {
				t.Fatalf("%q should be right aligned", tx.Content)
			}
			if tx.X != box.Left()+box.Width()-A4().CellPadding {
				t.Fatalf("%q should hug the right edge, got %v", tx.Content, tx.X)
			}
		}
	}
}

func TestWrap(t *testing.T) {
	e := newEngine()
	lines := e.Wrap("12 Park Street Kolkata West Bengal 700016", body, 30, 2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "12 Park Street" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != "Kolkata West Bengal 700016" {
		t.Fatalf("remaining words must all land on the last line, got %q", lines[1])
	}

	short := e.Wrap("Pune", body, 30, 2)
	if short[0] != "Pune" || short[1] != "" {
		t.Fatalf("unexpected wrap of short text: %q", short)
	}
}
