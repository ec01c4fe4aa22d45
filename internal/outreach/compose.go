// Package outreach composes and sends the cold-outreach mails for sheet
// records.
package outreach

import (
	_ "embed"
	"html"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// DefaultSubject is used when no subject template is given.
const DefaultSubject = "Tailored solutions for {company}"

const placeholder = "{company}"

var (
	//go:embed templates/default.html
	defaultBody string
	//go:embed templates/signature.html
	defaultSignature string
)

// Template describes the mail every recipient gets, parameterised by the
// company name.
type Template struct {
	// Subject may contain {company}. Empty means DefaultSubject.
	Subject string
	// Text is plain text; each non-blank line becomes a paragraph. Empty
	// means the built-in HTML body.
	Text string
	// Signature is HTML inserted before </body>. Empty disables it.
	Signature string
}

// DefaultSignature returns the built-in signature HTML.
func DefaultSignature() string {
	return defaultSignature
}

// LoadSignature reads a signature file, or returns the built-in one for "".
func LoadSignature(path string) (string, error) {
	if path == "" {
		return defaultSignature, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "outreach: read signature %s", path)
	}
	return string(b), nil
}

// RenderSubject fills in the company name.
func (t Template) RenderSubject(company string) string {
	s := t.Subject
	if strings.TrimSpace(s) == "" {
		s = DefaultSubject
	}
	return strings.ReplaceAll(s, placeholder, company)
}

// RenderBody builds the HTML body for company.
func (t Template) RenderBody(company string) (string, error) {
	var body string
	if strings.TrimSpace(t.Text) != "" {
		body = TextToHTML(t.Text, company)
	} else {
		body = strings.ReplaceAll(defaultBody, placeholder, html.EscapeString(company))
	}
	if t.Signature == "" {
		return body, nil
	}
	return AddSignature(body, t.Signature)
}

// TextToHTML converts plain text into a minimal HTML document with one
// paragraph per non-blank line.
func TextToHTML(text, company string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	first := true
	for _, line := range strings.Split(strings.ReplaceAll(text, placeholder, company), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	b.WriteString("</body></html>")
	return b.String()
}

// AddSignature appends signature HTML at the end of the body element.
func AddSignature(doc, signature string) (string, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", eris.Wrap(err, "outreach: parse body")
	}
	d.Find("body").AppendHtml(signature)
	out, err := d.Html()
	if err != nil {
		return "", eris.Wrap(err, "outreach: render body")
	}
	return out, nil
}
