package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/tooley/tooley/internal/i18n"
)

type htmlBlock struct {
	Kind  string
	HTML  template.HTML
	Items []template.HTML
}

type htmlPage struct {
	Lang   string
	Title  string
	Specs  []specLine
	Blocks []htmlBlock
	Footer string
}

var footers = map[i18n.Locale]string{
	i18n.English: "Generated by Tooley · tooley.app · Free for all teachers",
	i18n.Spanish: "Generado por Tooley · tooley.app · Gratis para todos los docentes",
}

// HTML renders a standalone page. Unicode passes through untouched and
// inline **bold** spans become <strong>.
func HTML(doc Document, meta Meta) ([]byte, error) {
	page := htmlPage{
		Lang:   meta.Locale.Code(),
		Title:  meta.Title(),
		Specs:  meta.specs(),
		Footer: footers[i18n.English],
	}
	if f, ok := footers[meta.Locale]; ok {
		page.Footer = f
	}

	for _, b := range doc.Blocks {
		switch b.Kind {
		case KindBullet:
			if n := len(page.Blocks); n > 0 && page.Blocks[n-1].Kind == "list" {
				page.Blocks[n-1].Items = append(page.Blocks[n-1].Items, inline(b.Text))
				continue
			}
			page.Blocks = append(page.Blocks, htmlBlock{Kind: "list", Items: []template.HTML{inline(b.Text)}})
		case KindHeading:
			page.Blocks = append(page.Blocks, htmlBlock{Kind: "heading", HTML: inline(b.Text)})
		case KindBold:
			page.Blocks = append(page.Blocks, htmlBlock{Kind: "label", HTML: inline(b.Text)})
		case KindNumbered:
			page.Blocks = append(page.Blocks, htmlBlock{Kind: "numbered", HTML: inline(b.Text)})
		case KindParagraph:
			page.Blocks = append(page.Blocks, htmlBlock{Kind: "paragraph", HTML: inline(b.Text)})
		case KindBreak:
			page.Blocks = append(page.Blocks, htmlBlock{Kind: "break"})
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// inline escapes s and turns balanced **spans** into <strong>.
func inline(s string) template.HTML {
	parts := strings.Split(s, "**")
	var b strings.Builder
	for i, p := range parts {
		esc := template.HTMLEscapeString(p)
		switch {
		case i%2 == 0:
			b.WriteString(esc)
		case i == len(parts)-1:
			// unbalanced trailing marker
			b.WriteString("**" + esc)
		default:
			b.WriteString("<strong>" + esc + "</strong>")
		}
	}
	return template.HTML(b.String())
}

var pageTemplate = template.Must(template.New("lesson").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | Tooley</title>
<style>
body{margin:0;background:#fffbeb;color:#0f172a;font:16px/1.6 -apple-system,"Segoe UI",Roboto,Helvetica,Arial,sans-serif}
main{max-width:760px;margin:0 auto;padding:24px 20px 48px}
header{display:flex;align-items:center;justify-content:space-between;margin-bottom:16px}
header a{color:#64748b;font-size:13px;text-decoration:none}
h1{font-size:24px;margin:8px 0 16px}
.specs{background:#fff;border:1px solid #0f172a;border-radius:8px;padding:12px 16px;margin-bottom:24px}
.specs h2{color:#d97706;font-size:12px;letter-spacing:.08em;margin:0 0 6px}
.specs p{margin:0;font-size:14px}
h2.section{color:#d97706;font-size:19px;margin:28px 0 8px;border-bottom:2px solid #fde68a;padding-bottom:4px}
p.label{font-weight:700;margin:12px 0 4px}
p.numbered{margin:4px 0 4px 8px}
ul{margin:4px 0 8px;padding-left:22px}
.gap{height:6px}
footer{margin-top:40px;color:#808080;font-size:12px;text-align:center}
@media print{body{background:#fff}.specs{border-color:#999}}
</style>
</head>
<body>
<main>
<header>
<svg xmlns="http://www.w3.org/2000/svg" width="120" height="32" viewBox="0 0 120 32" role="img" aria-label="tooley">
<rect x="0" y="4" width="6" height="24" rx="2" fill="#d97706"/>
<text x="14" y="25" font-family="Helvetica,Arial,sans-serif" font-size="24" font-weight="700" fill="#d97706">tooley</text>
</svg>
<a href="https://tooley.app">tooley.app</a>
</header>
<h1>{{.Title}}</h1>
{{- if .Specs}}
<section class="specs">
<h2>LESSON SPECIFICATIONS</h2>
{{- range .Specs}}
<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{- end}}
</section>
{{- end}}
<article>
{{- range .Blocks}}
{{- if eq .Kind "heading"}}
<h2 class="section">{{.HTML}}</h2>
{{- else if eq .Kind "label"}}
<p class="label">{{.HTML}}</p>
{{- else if eq .Kind "list"}}
<ul>
{{- range .Items}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- else if eq .Kind "numbered"}}
<p class="numbered">{{.HTML}}</p>
{{- else if eq .Kind "break"}}
<div class="gap"></div>
{{- else}}
<p>{{.HTML}}</p>
{{- end}}
{{- end}}
</article>
<footer>{{.Footer}}</footer>
</main>
</body>
</html>
`))
