// Package render turns generated lesson text into PDF and HTML.
//
// Both outputs are projections of one block list built by Classify, so they
// always agree on structure.
package render

import (
	"strings"
)

// Kind is the type of a line in lesson text.
type Kind int

const (
	KindBreak Kind = iota
	KindHeading
	KindBold
	KindBullet
	KindNumbered
	KindParagraph
)

func (k Kind) String() string {
	switch k {
	case KindBreak:
		return "break"
	case KindHeading:
		return "heading"
	case KindBold:
		return "bold"
	case KindBullet:
		return "bullet"
	case KindNumbered:
		return "numbered"
	case KindParagraph:
		return "paragraph"
	}
	return "unknown"
}

// Block is one classified line. Text has the markup prefix removed.
type Block struct {
	Kind Kind
	Text string
}

// Document is lesson text as an ordered block list.
type Document struct {
	Blocks []Block
}

// Classify splits text into blocks line by line. Runs of blank lines become
// one break; leading and trailing blank lines are dropped.
func Classify(text string) Document {
	var doc Document
	pendingBreak := false
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		b := ClassifyLine(raw)
		if b.Kind == KindBreak {
			pendingBreak = len(doc.Blocks) > 0
			continue
		}
		if pendingBreak {
			doc.Blocks = append(doc.Blocks, Block{Kind: KindBreak})
			pendingBreak = false
		}
		doc.Blocks = append(doc.Blocks, b)
	}
	return doc
}

// ClassifyLine applies the line rules to a single line.
func ClassifyLine(line string) Block {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return Block{Kind: KindBreak}
	case strings.HasPrefix(line, "## "):
		return Block{Kind: KindHeading, Text: strings.TrimSpace(line[3:])}
	case isBoldLine(line):
		return Block{Kind: KindBold, Text: strings.TrimSpace(line[2 : len(line)-2])}
	case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
		return Block{Kind: KindBullet, Text: strings.TrimSpace(line[2:])}
	case isNumbered(line):
		return Block{Kind: KindNumbered, Text: line}
	}
	return Block{Kind: KindParagraph, Text: line}
}

func isBoldLine(line string) bool {
	return len(line) > 4 && strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") &&
		strings.TrimSpace(line[2:len(line)-2]) != ""
}

func isNumbered(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i < len(line) && strings.ContainsRune(".):", rune(line[i]))
}

// Text serializes the blocks back to lesson text. Classify(d.Text()) yields
// the same block kinds as d.
func (d Document) Text() string {
	lines := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		switch b.Kind {
		case KindBreak:
			lines = append(lines, "")
		case KindHeading:
			lines = append(lines, "## "+b.Text)
		case KindBold:
			lines = append(lines, "**"+b.Text+"**")
		case KindBullet:
			lines = append(lines, "- "+b.Text)
		default:
			lines = append(lines, b.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// Kinds lists the block kinds in order.
func (d Document) Kinds() []Kind {
	out := make([]Kind, len(d.Blocks))
	for i, b := range d.Blocks {
		out[i] = b.Kind
	}
	return out
}

// Headings returns the heading texts in order.
func (d Document) Headings() []string {
	var out []string
	for _, b := range d.Blocks {
		if b.Kind == KindHeading {
			out = append(out, b.Text)
		}
	}
	return out
}

// stripBold removes inline ** markers.
func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
