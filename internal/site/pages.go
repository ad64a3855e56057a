package site

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"restlab/internal/catalog"
)

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:52rem;margin:2rem auto;padding:0 1rem;line-height:1.6;color:#222}
table{border-collapse:collapse;margin:1rem 0}th,td{border:1px solid #ccc;padding:.3rem .6rem;text-align:left}
.quiz{background:#f6f8fa;border-radius:6px;padding:1rem 1.5rem}code{background:#eee;padding:0 .3rem}
pre{background:#f5f5f5;padding:1rem;border-radius:4px;overflow:auto}pre code{padding:0}`

// writer accumulates the first write error so templates stay linear.
type writer struct {
	w   io.Writer
	err error
}

func (p *writer) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *writer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *writer) tag(name, s string) {
	p.raw("<" + name + ">")
	p.text(s)
	p.raw("</" + name + ">")
}

func layout(title string, body func(*writer)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &writer{w: w}
		p.raw(`<!doctype html><html lang="pt-BR"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		p.text(title)
		p.raw(`</title><style>` + pageStyle + `</style></head><body><nav><a href="/">restlab</a></nav>`)
		body(p)
		p.raw(`</body></html>`)
		return p.err
	})
}

func indexPage(topics []catalog.Topic) templ.Component {
	return layout("restlab", func(p *writer) {
		p.tag("h1", "Aprenda REST")
		p.raw("<ul>")
		for _, topic := range topics {
			p.raw(`<li><a href="/topics/` + templ.EscapeString(topic.ID) + `">`)
			p.text(topic.Title)
			p.raw("</a>")
			if topic.Summary != "" {
				p.raw("<br>")
				p.text(topic.Summary)
			}
			p.raw("</li>")
		}
		p.raw("</ul>")
		p.raw(`<p>API de demonstração: <code>/api/products</code></p>`)
	})
}

func topicPage(topic catalog.Topic) templ.Component {
	return layout(topic.Title, func(p *writer) {
		p.tag("h1", topic.Title)
		if topic.Summary != "" {
			p.tag("p", topic.Summary)
		}
		for _, section := range topic.Sections {
			p.tag("h2", section.Heading)
			for _, paragraph := range section.Paragraphs {
				p.tag("p", paragraph)
			}
			if section.Table != nil {
				writeTable(p, *section.Table)
			}
			if section.Code != "" {
				p.raw("<pre><code>")
				p.text(section.Code)
				p.raw("</code></pre>")
			}
		}
		writeQuiz(p, topic)
	})
}

func writeTable(p *writer, table catalog.Table) {
	p.raw("<table><thead><tr>")
	for _, cell := range table.Header {
		p.tag("th", cell)
	}
	p.raw("</tr></thead><tbody>")
	for _, row := range table.Rows {
		p.raw("<tr>")
		for _, cell := range row {
			p.tag("td", cell)
		}
		p.raw("</tr>")
	}
	p.raw("</tbody></table>")
}

func writeQuiz(p *writer, topic catalog.Topic) {
	p.raw(`<section class="quiz">`)
	p.tag("h2", topic.Quiz.Title)
	p.raw("<ol>")
	for _, q := range topic.Quiz.Questions {
		p.raw("<li>")
		p.tag("p", q.Prompt)
		p.raw(`<ol type="A">`)
		for _, choice := range q.Choices {
			p.tag("li", choice)
		}
		p.raw("</ol></li>")
	}
	p.raw("</ol><p>")
	p.text("Responda no terminal: ")
	p.tag("code", fmt.Sprintf("restlab quiz %s", topic.ID))
	p.raw("</p></section>")
}

func notFoundPage(id string) templ.Component {
	return layout("Not found", func(p *writer) {
		p.tag("h1", "Not found")
		p.tag("p", fmt.Sprintf("No topic named %q.", id))
	})
}
