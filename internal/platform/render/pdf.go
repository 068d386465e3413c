package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"payslip/internal/layout"
)

const creator = "payslip"

// PDF draws layout instructions with gofpdf core fonts. Created is stamped
// as both creation and modification date. Left zero, the Unix epoch is used
// so equal input renders equal bytes.
type PDF struct {
	LineWidth float64
	Created   time.Time
}

func NewPDF() *PDF {
	return &PDF{LineWidth: 0.2}
}

func (p *PDF) Extension() string {
	return "pdf"
}

// Measurer returns font metrics backed by a fresh gofpdf instance, so each
// document build measures with its own state.
func (p *PDF) Measurer() layout.Measurer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return &metrics{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (p *PDF) Render(doc layout.Document) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: doc.Page.Width, Ht: doc.Page.Height},
	})
	pdf.SetCreator(creator, true)
	created := p.Created
	if created.IsZero() {
		created = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetCatalogSort(true)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	if doc.Subject != "" {
		pdf.SetSubject(doc.Subject, true)
	}
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetLineWidth(p.LineWidth)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, ins := range doc.Instructions {
		switch v := ins.(type) {
		case layout.Text:
			pdf.SetFont(v.Font.Family, v.Font.Style, v.Font.Size)
			content := tr(v.Content)
			x := v.X
			switch v.Align {
			case layout.AlignRight:
				x -= pdf.GetStringWidth(content)
			case layout.AlignCenter:
				x -= pdf.GetStringWidth(content) / 2
			}
			pdf.Text(x, v.Y, content)
		case layout.Rule:
			pdf.Line(v.X1, v.Y1, v.X2, v.Y2)
		case layout.Box:
			pdf.Rect(v.X, v.Y, v.W, v.H, "D")
		default:
			return nil, fmt.Errorf("instruction %d: unsupported type %T", i, ins)
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type metrics struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (m *metrics) StringWidth(text string, font layout.Font) float64 {
	m.pdf.SetFont(font.Family, font.Style, font.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}
