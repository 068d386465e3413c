package layout

type Cursor struct {
	Y float64
}

// Frame is a rectangular region with its own cursor. The root frame is the
// page; DrawBoxedSection nests a frame inside a ruled box.
type Frame struct {
	engine *Engine
	left   float64
	top    float64
	width  float64
	height float64
	pad    float64
	cursor Cursor
}

type Field struct {
	Label string
	Value string
}

func (f *Frame) Y() float64      { return f.cursor.Y }
func (f *Frame) Top() float64    { return f.top }
func (f *Frame) Left() float64   { return f.left }
func (f *Frame) Width() float64  { return f.width }
func (f *Frame) Height() float64 { return f.height }

// Advance moves the cursor down by dy without drawing.
func (f *Frame) Advance(dy float64) {
	f.cursor.Y += dy
}

func (f *Frame) baseline() float64 {
	return f.cursor.Y + f.engine.page.BaselineDrop
}

func (f *Frame) text(content string, x float64, align Align, font Font) {
	if content == "" {
		return
	}
	f.engine.emit(Text{Content: content, X: x, Y: f.baseline(), Align: align, Font: font})
}

func (f *Frame) PlaceRightAlignedLine(text string, font Font) {
	f.text(text, f.left+f.width-f.pad, AlignRight, font)
	f.Advance(f.engine.page.LineHeight)
}

func (f *Frame) PlaceCenteredLine(text string, font Font) {
	f.text(text, f.left+f.width/2, AlignCenter, font)
	f.Advance(f.engine.page.LineHeight)
}

// PlaceLabeledRow writes up to columnCount "label: value" pairs in equal
// slots from the left edge. The label is set in bold and measured so the
// value starts exactly where the label ends. A slot whose label is empty is
// left blank. columnWidth <= 0 divides the frame width evenly.
func (f *Frame) PlaceLabeledRow(items []Field, columnCount int, columnWidth float64) {
	if columnCount <= 0 {
		columnCount = len(items)
	}
	if columnCount > 0 && columnWidth <= 0 {
		columnWidth = f.width / float64(columnCount)
	}

	body := f.engine.body
	label := body.Bold()
	for i := 0; i < columnCount && i < len(items); i++ {
		item := items[i]
		if item.Label == "" {
			continue
		}
		x := f.left + float64(i)*columnWidth + f.engine.page.CellPadding
		f.text(item.Label, x, AlignLeft, label)
		f.text(": "+item.Value, x+f.engine.width(item.Label, label), AlignLeft, body)
	}
	f.Advance(f.engine.page.RowHeight)
}

// DrawBoxedSection rules a frame-wide box of the given height at the cursor
// and returns the frame inside it. The parent cursor moves past the box.
func (f *Frame) DrawBoxedSection(height float64) *Frame {
	top := f.cursor.Y
	f.engine.emit(Box{X: f.left, Y: top, W: f.width, H: height})
	f.Advance(height)
	return &Frame{
		engine: f.engine,
		left:   f.left,
		top:    top,
		width:  f.width,
		height: height,
		pad:    f.engine.page.CellPadding,
		cursor: Cursor{Y: top},
	}
}

// Rule draws a horizontal line across the frame at the cursor.
func (f *Frame) Rule() {
	y := f.cursor.Y
	f.engine.emit(Rule{X1: f.left, Y1: y, X2: f.left + f.width, Y2: y})
}
