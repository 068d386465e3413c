package layout

import "strings"

// Engine collects the instructions emitted by its frames. One Engine is
// built per document and is not safe for concurrent use.
type Engine struct {
	page    Page
	measure Measurer
	body    Font
	out     []Instruction
	root    *Frame
}

func New(page Page, measure Measurer, body Font) *Engine {
	e := &Engine{page: page, measure: measure, body: body}
	e.root = &Frame{
		engine: e,
		left:   page.MarginLeft,
		top:    page.MarginTop,
		width:  page.ContentWidth(),
		height: page.Height - page.MarginTop,
		cursor: Cursor{Y: page.MarginTop},
	}
	return e
}

// Page returns the root frame spanning the area inside the margins.
func (e *Engine) Page() *Frame {
	return e.root
}

func (e *Engine) Body() Font {
	return e.body
}

// Instructions returns a copy of everything emitted so far, in order.
func (e *Engine) Instructions() []Instruction {
	out := make([]Instruction, len(e.out))
	copy(out, e.out)
	return out
}

func (e *Engine) emit(ins Instruction) {
	e.out = append(e.out, ins)
}

func (e *Engine) width(text string, font Font) float64 {
	if text == "" {
		return 0
	}
	return e.measure.StringWidth(text, font)
}

// Wrap splits text into exactly lines lines no wider than maxWidth where
// word breaks allow it. Words that do not fit on the earlier lines all go on
// the last one, so nothing is dropped.
func (e *Engine) Wrap(text string, font Font, maxWidth float64, lines int) []string {
	if lines <= 0 {
		return nil
	}
	out := make([]string, lines)
	words := strings.Fields(text)
	line := 0
	for i, word := range words {
		if line == lines-1 {
			out[line] = strings.Join(append(splitNonEmpty(out[line]), words[i:]...), " ")
			return out
		}
		candidate := word
		if out[line] != "" {
			candidate = out[line] + " " + word
		}
		if out[line] != "" && e.width(candidate, font) > maxWidth {
			line++
			if line == lines-1 {
				out[line] = strings.Join(words[i:], " ")
				return out
			}
			candidate = word
		}
		out[line] = candidate
	}
	return out
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
