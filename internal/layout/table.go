package layout

// Table describes a ruled grid. Numeric lists the column indexes whose cells
// are right aligned; nothing is inferred from the cell contents.
//
// Fractions are shares of the frame width, one per header. They are not
// checked against the frame: a table whose fractions add up to more than one
// draws past the right edge.
type Table struct {
	Headers   []string
	Fractions []float64
	Numeric   []int
	Rows      [][]string
	Totals    []string
}

// DrawTable draws column separators over the full frame height, the header
// row, every data row, a rule and then the totals row in bold. Geometry
// depends only on the column fractions, so zero rows is valid.
func (f *Frame) DrawTable(t Table) {
	cols := len(t.Headers)
	if cols == 0 {
		return
	}

	edges := make([]float64, cols+1)
	edges[0] = f.left
	for i := 0; i < cols; i++ {
		share := 0.0
		if i < len(t.Fractions) {
			share = t.Fractions[i]
		}
		edges[i+1] = edges[i] + share*f.width
	}

	for i := 1; i < cols; i++ {
		f.engine.emit(Rule{X1: edges[i], Y1: f.top, X2: edges[i], Y2: f.top + f.height})
	}

	numeric := make(map[int]bool, len(t.Numeric))
	for _, idx := range t.Numeric {
		numeric[idx] = true
	}

	body := f.engine.body
	f.cells(t.Headers, edges, numeric, body.Bold())
	for _, row := range t.Rows {
		f.cells(row, edges, numeric, body)
	}
	f.Rule()
	f.cells(t.Totals, edges, numeric, body.Bold())
}

func (f *Frame) cells(values []string, edges []float64, numeric map[int]bool, font Font) {
	pad := f.engine.page.CellPadding
	for i := 0; i < len(edges)-1 && i < len(values); i++ {
		if numeric[i] {
			f.text(values[i], edges[i+1]-pad, AlignRight, font)
			continue
		}
		f.text(values[i], edges[i]+pad, AlignLeft, font)
	}
	f.Advance(f.engine.page.RowHeight)
}
