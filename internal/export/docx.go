package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/mahdi67436/cv-maker-web/internal/resumes"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// docxBuilder accumulates WordprocessingML paragraphs for word/document.xml.
type docxBuilder struct {
	body strings.Builder
}

func (b *docxBuilder) paragraph(text string, bold bool, halfPoints int) {
	b.body.WriteString("<w:p><w:r><w:rPr>")
	if bold {
		b.body.WriteString("<w:b/>")
	}
	if halfPoints > 0 {
		fmt.Fprintf(&b.body, `<w:sz w:val="%d"/>`, halfPoints)
	}
	b.body.WriteString("</w:rPr><w:t xml:space=\"preserve\">")
	b.body.WriteString(escapeXML(text))
	b.body.WriteString("</w:t></w:r></w:p>")
}

func (b *docxBuilder) heading(text string) {
	b.paragraph(text, true, 28)
}

func (b *docxBuilder) text(text string) {
	b.paragraph(text, false, 0)
}

func (b *docxBuilder) blank() {
	b.body.WriteString("<w:p/>")
}

func (b *docxBuilder) document() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + b.body.String() + `</w:body></w:document>`
}

// BuildDOCX assembles a minimal Word package for the resume. Sections render
// in the same order as the HTML export.
func BuildDOCX(r resumes.Resume) ([]byte, error) {
	var b docxBuilder

	b.paragraph(fallback(r.FullName, "Your Name"), true, 48)
	if r.Title != "" {
		b.paragraph(r.Title, false, 24)
	}
	if contact := joinNonEmpty(" | ", r.Email, r.Phone, r.City, r.Country); contact != "" {
		b.text(contact)
	}
	if links := joinNonEmpty(" | ", r.LinkedIn, r.GitHub, r.Website); links != "" {
		b.text(links)
	}
	b.blank()

	if r.Summary != "" {
		b.heading("Professional Summary")
		b.text(r.Summary)
		b.blank()
	}

	if len(r.Experiences) > 0 {
		b.heading("Work Experience")
		for _, exp := range r.Experiences {
			b.paragraph(exp.JobTitle, true, 0)
			line := joinNonEmpty(" | ", exp.Company, dateRange(exp.StartDate, exp.EndDate, exp.IsCurrent))
			if line != "" {
				b.text(line)
			}
			if exp.Description != "" {
				b.text(exp.Description)
			}
			b.blank()
		}
	}

	if len(r.Education) > 0 {
		b.heading("Education")
		for _, edu := range r.Education {
			degree := edu.Degree
			if edu.FieldOfStudy != "" {
				degree += " in " + edu.FieldOfStudy
			}
			b.paragraph(degree, true, 0)
			line := joinNonEmpty(" | ", edu.Institution, dateRange(edu.StartDate, edu.EndDate, false))
			if edu.GPA != "" {
				line = joinNonEmpty(" | ", line, "GPA: "+edu.GPA)
			}
			if line != "" {
				b.text(line)
			}
			b.blank()
		}
	}

	if len(r.Skills) > 0 {
		b.heading("Skills")
		var labels []string
		for _, sk := range r.Skills {
			label := sk.Name
			if sk.Level != "" {
				label += " (" + sk.Level + ")"
			}
			labels = append(labels, label)
		}
		b.text(strings.Join(labels, ", "))
		b.blank()
	}

	if len(r.Projects) > 0 {
		b.heading("Projects")
		for _, p := range r.Projects {
			b.paragraph(p.Name, true, 0)
			if p.Description != "" {
				b.text(p.Description)
			}
			if p.Technologies != "" {
				b.text("Technologies: " + p.Technologies)
			}
			b.blank()
		}
	}

	if len(r.Certifications) > 0 {
		b.heading("Certifications")
		for _, cert := range r.Certifications {
			b.paragraph(cert.Name, true, 0)
			if line := joinNonEmpty(" | ", cert.Issuer, cert.IssueDate); line != "" {
				b.text(line)
			}
			b.blank()
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name, body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/_rels/document.xml.rels", docRelsXML},
		{"word/document.xml", b.document()},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
