package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/tooley/tooley/internal/logger"
)

// ErrNoDocument means every PDF tier failed. Callers send plain text instead.
var ErrNoDocument = errors.New("no document produced")

// Tier renders one PDF layout. Each call builds its own fpdf document.
type Tier struct {
	Name   string
	Render func(doc Document, meta Meta) ([]byte, error)
}

// TierError records why a tier failed.
type TierError struct {
	Tier string
	Err  error
}

func (e TierError) Error() string { return fmt.Sprintf("%s tier: %v", e.Tier, e.Err) }
func (e TierError) Unwrap() error { return e.Err }

// Result is the outcome of a ladder run.
type Result struct {
	PDF      []byte
	Tier     string
	Failures []TierError
}

// Ladder tries tiers in order until one produces a document.
type Ladder struct {
	Tiers []Tier
	Log   *logger.Logger
}

// DefaultLadder is branded, then simplified, then minimal.
func DefaultLadder(tr *Transliterator, log *logger.Logger) Ladder {
	if tr == nil {
		tr = DefaultTransliterator()
	}
	return Ladder{
		Tiers: []Tier{Branded(tr), Simplified(tr), Minimal(tr)},
		Log:   log,
	}
}

// Render returns the first tier's output that succeeds. When all fail the
// error wraps ErrNoDocument and every tier failure. It never panics.
func (l Ladder) Render(doc Document, meta Meta) (Result, error) {
	var res Result
	for _, t := range l.Tiers {
		data, err := runTier(t, doc, meta)
		if err == nil && len(data) == 0 {
			err = errors.New("empty output")
		}
		if err != nil {
			res.Failures = append(res.Failures, TierError{Tier: t.Name, Err: err})
			if l.Log != nil {
				l.Log.Warn("pdf tier failed", "tier", t.Name, "error", err)
			}
			continue
		}
		res.PDF = data
		res.Tier = t.Name
		return res, nil
	}

	errs := []error{ErrNoDocument}
	for _, f := range res.Failures {
		errs = append(errs, f)
	}
	return res, errors.Join(errs...)
}

func runTier(t Tier, doc Document, meta Meta) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return t.Render(doc, meta)
}

var (
	amber = [3]int{217, 119, 6}
	ink   = [3]int{15, 23, 42}
	cream = [3]int{255, 251, 235}
	grey  = [3]int{128, 128, 128}
)

const footerText = "Generated by Tooley | tooley.app | Free for all teachers"

func newPDF(meta Meta, tr *Transliterator) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(tr.ASCII(meta.Title()), false)
	pdf.SetCreator("Tooley", false)
	return pdf
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setText(pdf *fpdf.Fpdf, c [3]int) { pdf.SetTextColor(c[0], c[1], c[2]) }
func setFill(pdf *fpdf.Fpdf, c [3]int) { pdf.SetFillColor(c[0], c[1], c[2]) }
func setDraw(pdf *fpdf.Fpdf, c [3]int) { pdf.SetDrawColor(c[0], c[1], c[2]) }

// Branded is the full layout: logo bar, specifications box, colored headings.
func Branded(tr *Transliterator) Tier {
	return Tier{Name: "branded", Render: func(doc Document, meta Meta) ([]byte, error) {
		pdf := newPDF(meta, tr)
		pdf.SetFooterFunc(func() {
			pdf.SetY(-20)
			pdf.SetFont("Helvetica", "", 8)
			setText(pdf, grey)
			pdf.CellFormat(0, 10, footerText, "", 0, "C", false, 0, "")
		})
		pdf.AddPage()

		setFill(pdf, amber)
		pdf.Rect(10, 10, 4, 12, "F")
		pdf.SetXY(18, 10)
		pdf.SetFont("Helvetica", "B", 18)
		setText(pdf, amber)
		pdf.Cell(40, 12, "tooley")
		pdf.SetXY(150, 14)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(50, 8, "tooley.app", "", 0, "R", false, 0, "")
		pdf.SetY(30)

		pdf.SetFont("Helvetica", "B", 14)
		setText(pdf, ink)
		pdf.MultiCell(0, 8, tr.ASCII(truncate(meta.Title(), 80)), "", "L", false)
		pdf.Ln(2)

		if specs := meta.specs(); len(specs) > 0 {
			y := pdf.GetY()
			h := 8 + float64(len(specs))*5
			setFill(pdf, cream)
			setDraw(pdf, ink)
			pdf.Rect(10, y, 190, h, "FD")
			pdf.SetXY(15, y+3)
			pdf.SetFont("Helvetica", "B", 9)
			setText(pdf, amber)
			pdf.Cell(0, 5, "LESSON SPECIFICATIONS")
			pdf.SetFont("Helvetica", "", 9)
			setText(pdf, ink)
			for i, s := range specs {
				pdf.SetXY(15, y+8+float64(i)*5)
				pdf.Cell(0, 5, tr.ASCII(s.Label+": "+s.Value))
			}
			pdf.SetY(y + h + 10)
		}

		pdf.SetFont("Helvetica", "", 10)
		setText(pdf, ink)
		for _, b := range doc.Blocks {
			text := tr.ASCII(stripBold(b.Text))
			switch b.Kind {
			case KindBreak:
				pdf.Ln(3)
			case KindHeading:
				pdf.Ln(5)
				pdf.SetFont("Helvetica", "B", 12)
				setText(pdf, amber)
				pdf.MultiCell(0, 6, text, "", "L", false)
				pdf.SetFont("Helvetica", "", 10)
				setText(pdf, ink)
			case KindBold:
				pdf.SetFont("Helvetica", "B", 10)
				pdf.MultiCell(0, 5, text, "", "L", false)
				pdf.SetFont("Helvetica", "", 10)
			case KindBullet:
				pdf.MultiCell(0, 5, "  * "+text, "", "L", false)
			default:
				pdf.MultiCell(0, 5, text, "", "L", false)
			}
		}
		return output(pdf)
	}}
}

// Simplified drops the branding: a plain header line, then bold headings
// over ASCII body text.
func Simplified(tr *Transliterator) Tier {
	return Tier{Name: "simplified", Render: func(doc Document, meta Meta) ([]byte, error) {
		pdf := newPDF(meta, tr)
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, "Tooley - Lesson Plan", "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, tr.ASCII(meta.Title()), "", "L", false)
		pdf.Ln(4)

		for _, b := range doc.Blocks {
			text := tr.ASCII(stripBold(b.Text))
			switch b.Kind {
			case KindBreak:
				pdf.Ln(3)
			case KindHeading, KindBold:
				pdf.SetFont("Helvetica", "B", 11)
				pdf.MultiCell(0, 6, text, "", "L", false)
				pdf.SetFont("Helvetica", "", 10)
			case KindBullet:
				pdf.MultiCell(0, 5, "  - "+text, "", "L", false)
			default:
				pdf.MultiCell(0, 5, text, "", "L", false)
			}
		}
		return output(pdf)
	}}
}

// Minimal writes the whole text as one block under a product-name line.
func Minimal(tr *Transliterator) Tier {
	return Tier{Name: "minimal", Render: func(doc Document, meta Meta) ([]byte, error) {
		pdf := newPDF(meta, tr)
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, "Tooley", "", "L", false)
		pdf.Ln(3)
		pdf.MultiCell(0, 5, tr.ASCII(stripBold(doc.Text())), "", "L", false)
		return output(pdf)
	}}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
