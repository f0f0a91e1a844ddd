package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/tooley/tooley/internal/i18n"
)

const sampleText = `## Learning Objectives
- Students can name **halves** and quarters
- Students can split a group of objects fairly

## Materials Needed
- 12 small stones per group (or bottle caps)

## Opening (4 min)
**Say: "Who has shared a chapati with a friend?"**
Let two or three students answer. Draw a circle on the board.

## Main Activity (18 min)
1. Put students in groups of four.
2. Each group shares 12 stones equally between 2 people.
3) Then between 4 people.

## Closing (7 min)
Ask: what is half of 10? ¿Y la mitad de 8? — answer together ✓
`

func testMeta() Meta {
	return Meta{Subject: "Mathematics", Topic: "Fractions", Ages: "9-11", Duration: "30", Country: "Kenya", Locale: i18n.English}
}

func pdfText(t *testing.T, data []byte) string {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			t.Fatalf("page %d text: %v", i, err)
		}
		b.WriteString(text)
	}
	return b.String()
}

func assertPDF(t *testing.T, data []byte) {
	t.Helper()
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestDefaultLadderUsesBrandedTier(t *testing.T) {
	l := DefaultLadder(nil, nil)
	res, err := l.Render(Classify(sampleText), testMeta())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Tier != "branded" || len(res.Failures) != 0 {
		t.Fatalf("tier = %q, failures = %v", res.Tier, res.Failures)
	}
	assertPDF(t, res.PDF)

	text := pdfText(t, res.PDF)
	for _, want := range []string{"tooley", "LESSON SPECIFICATIONS", "Learning Objectives", "Kenya", "Generated by Tooley"} {
		if !strings.Contains(text, want) {
			t.Errorf("pdf text missing %q", want)
		}
	}
	if strings.Contains(text, "**") {
		t.Error("inline bold markers should be stripped in the PDF")
	}
}

func TestEachTierRendersAlone(t *testing.T) {
	tr := DefaultTransliterator()
	for _, tier := range []Tier{Branded(tr), Simplified(tr), Minimal(tr)} {
		data, err := tier.Render(Classify(sampleText), testMeta())
		if err != nil {
			t.Fatalf("%s: %v", tier.Name, err)
		}
		assertPDF(t, data)
		if !strings.Contains(pdfText(t, data), "Tooley") && tier.Name != "branded" {
			t.Errorf("%s: missing product header", tier.Name)
		}
	}
}

func failing(name string) Tier {
	return Tier{Name: name, Render: func(Document, Meta) ([]byte, error) {
		return nil, errors.New("forced failure")
	}}
}

func panicking(name string) Tier {
	return Tier{Name: name, Render: func(Document, Meta) ([]byte, error) {
		panic("font table exploded")
	}}
}

func TestLadderFallsBack(t *testing.T) {
	tr := DefaultTransliterator()
	doc, meta := Classify(sampleText), testMeta()

	res, err := Ladder{Tiers: []Tier{failing("branded"), Simplified(tr), Minimal(tr)}}.Render(doc, meta)
	if err != nil || res.Tier != "simplified" {
		t.Fatalf("tier 1 failure: tier=%q err=%v", res.Tier, err)
	}
	assertPDF(t, res.PDF)
	if len(res.Failures) != 1 || res.Failures[0].Tier != "branded" {
		t.Errorf("failures = %v", res.Failures)
	}

	res, err = Ladder{Tiers: []Tier{panicking("branded"), failing("simplified"), Minimal(tr)}}.Render(doc, meta)
	if err != nil || res.Tier != "minimal" {
		t.Fatalf("tier 1+2 failure: tier=%q err=%v", res.Tier, err)
	}
	assertPDF(t, res.PDF)
	if !strings.Contains(res.Failures[0].Error(), "panic") {
		t.Errorf("panic not recorded: %v", res.Failures[0])
	}
}

func TestLadderAllFail(t *testing.T) {
	l := Ladder{Tiers: []Tier{failing("branded"), panicking("simplified"), failing("minimal")}}
	var (
		res Result
		err error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("ladder panicked: %v", r)
			}
		}()
		res, err = l.Render(Classify(sampleText), testMeta())
	}()
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if res.PDF != nil || res.Tier != "" || len(res.Failures) != 3 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestLadderEmptyOutputIsFailure(t *testing.T) {
	empty := Tier{Name: "empty", Render: func(Document, Meta) ([]byte, error) { return nil, nil }}
	_, err := Ladder{Tiers: []Tier{empty}}.Render(Document{}, Meta{})
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
}

func TestBrandedLongLessonPaginates(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("## Section\n- a fairly long bullet line that keeps going across the page width for wrapping\n\n")
	}
	data, err := Branded(DefaultTransliterator()).Render(Classify(b.String()), Meta{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if r.NumPage() < 2 {
		t.Errorf("expected several pages, got %d", r.NumPage())
	}
}

func TestFileStem(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Fractions", "fractions"},
		{"Shapes and Geometry", "shapes-and-geometry"},
		{"A very long topic name that keeps going", "a-very-long-topic-name-that-ke"},
		{"", "lesson"},
		{"Sums/Differences", "sumsdifferences"},
		{"Fracciones Básicas", "fracciones-básicas"},
	}
	for _, tc := range tests {
		if got := FileStem(tc.in); got != tc.want {
			t.Errorf("FileStem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMetaFrom(t *testing.T) {
	m := Meta{Topic: "Plants"}
	if m.Title() != "Plants" || (Meta{}).Title() != "Lesson Plan" || testMeta().Title() != "Mathematics: Fractions" {
		t.Error("unexpected titles")
	}
	specs := Meta{Subject: "Ciencias", Duration: "45", Locale: i18n.Spanish}.specs()
	if len(specs) != 2 || specs[0].Label != "Materia" || specs[1].Value != "45 min" {
		t.Errorf("specs = %+v", specs)
	}
	for in, want := range map[string]string{"60": "60 min", " 30 ": "30 min", "about 40 minutes": "about 40 minutes", "1 hour": "1 hour"} {
		specs := Meta{Duration: in}.specs()
		if len(specs) != 1 || specs[0].Value != want {
			t.Errorf("duration %q: specs = %+v, want %q", in, specs, want)
		}
	}
}
