// Package export renders resumes to HTML, PDF, and DOCX downloads.
package export

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/mahdi67436/cv-maker-web/internal/resumes"
)

// styleCSS holds the per-template stylesheet. Unknown template names fall
// back to modern.
var styleCSS = map[string]template.CSS{
	"modern": `
@page { margin: 0.5in; }
body { font-family: 'Segoe UI', Arial, sans-serif; font-size: 11pt; line-height: 1.5; color: #333; }
.header { text-align: center; border-bottom: 2px solid #2563eb; padding-bottom: 15px; margin-bottom: 20px; }
.name { font-size: 28pt; font-weight: bold; color: #1e40af; margin: 0; }
.title { font-size: 14pt; color: #64748b; margin-top: 5px; }
.contact { font-size: 10pt; color: #64748b; margin-top: 8px; }
.section { margin-bottom: 15px; }
.section-title { font-size: 14pt; font-weight: bold; color: #2563eb; border-bottom: 1px solid #e2e8f0; padding-bottom: 5px; margin-bottom: 10px; }
.experience-item, .education-item { margin-bottom: 12px; }
.item-title { font-weight: bold; font-size: 11pt; }
.item-subtitle { font-style: italic; color: #64748b; }
.item-date { float: right; font-size: 10pt; color: #64748b; }
.item-description { font-size: 10pt; margin-top: 4px; }
.skill-tag { background: #f1f5f9; padding: 3px 8px; border-radius: 4px; font-size: 10pt; margin-right: 5px; }
`,
	"professional": `
@page { margin: 0.5in; }
body { font-family: 'Times New Roman', serif; font-size: 12pt; line-height: 1.6; color: #000; }
.header { text-align: center; border-bottom: 3px solid #000; padding-bottom: 10px; margin-bottom: 20px; }
.name { font-size: 24pt; font-weight: bold; text-transform: uppercase; margin: 0; }
.contact { font-size: 10pt; margin-top: 8px; }
.section { margin-bottom: 18px; }
.section-title { font-size: 14pt; font-weight: bold; text-transform: uppercase; border-bottom: 1px solid #000; padding-bottom: 3px; margin-bottom: 12px; }
.experience-item, .education-item { margin-bottom: 15px; }
.item-title { font-weight: bold; }
.item-subtitle { font-style: italic; }
.item-date { float: right; font-size: 10pt; }
.item-description { text-align: justify; margin-top: 5px; }
.skill-tag { margin-right: 8px; }
`,
	"creative": `
@page { margin: 0.5in; }
body { font-family: 'Verdana', sans-serif; font-size: 11pt; line-height: 1.5; color: #333; }
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 25px; border-radius: 8px; margin-bottom: 20px; }
.name { font-size: 32pt; font-weight: bold; margin: 0; }
.title { font-size: 14pt; opacity: 0.9; margin-top: 5px; }
.contact { font-size: 10pt; opacity: 0.9; margin-top: 10px; }
.section { margin-bottom: 18px; }
.section-title { font-size: 16pt; font-weight: bold; color: #764ba2; margin-bottom: 12px; }
.experience-item, .education-item { background: #f8f9fa; padding: 12px; border-radius: 6px; margin-bottom: 10px; }
.item-title { font-weight: bold; color: #667eea; }
.item-subtitle { color: #666; }
.item-date { float: right; font-size: 9pt; color: #999; }
.skill-tag { background: #f8f9fa; padding: 3px 8px; border-radius: 4px; margin-right: 5px; }
`,
	"ats": `
@page { margin: 0.75in; }
body { font-family: Arial, Helvetica, sans-serif; font-size: 11pt; line-height: 1.4; color: #000; }
.header { text-align: center; margin-bottom: 20px; }
.name { font-size: 22pt; font-weight: bold; }
.title { font-size: 12pt; margin-top: 5px; }
.contact { font-size: 10pt; margin-top: 5px; }
.section { margin-bottom: 15px; page-break-inside: avoid; }
.section-title { font-size: 14pt; font-weight: bold; text-transform: uppercase; margin-bottom: 10px; }
.item-title { font-weight: bold; }
.item-subtitle { font-style: italic; }
.item-date { float: right; }
.item-description { margin-top: 3px; }
.skill-tag { margin-right: 8px; }
`,
	"dark": `
@page { margin: 0.5in; }
body { font-family: 'Segoe UI', Arial, sans-serif; font-size: 11pt; line-height: 1.5; color: #e2e8f0; background: #1e293b; padding: 20px; }
.header { text-align: center; border-bottom: 2px solid #3b82f6; padding-bottom: 15px; margin-bottom: 20px; }
.name { font-size: 28pt; font-weight: bold; color: #f8fafc; margin: 0; }
.title { font-size: 14pt; color: #94a3b8; margin-top: 5px; }
.contact { font-size: 10pt; color: #94a3b8; margin-top: 8px; }
.section { margin-bottom: 15px; }
.section-title { font-size: 14pt; font-weight: bold; color: #3b82f6; border-bottom: 1px solid #334155; padding-bottom: 5px; margin-bottom: 10px; }
.experience-item, .education-item { margin-bottom: 12px; }
.item-title { font-weight: bold; color: #f8fafc; }
.item-subtitle { color: #94a3b8; font-style: italic; }
.item-date { float: right; font-size: 10pt; color: #64748b; }
.item-description { color: #cbd5e1; margin-top: 4px; }
.skill-tag { background: #334155; padding: 3px 8px; border-radius: 4px; font-size: 10pt; color: #e2e8f0; margin-right: 5px; }
`,
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Name}} - Resume</title>
<style>{{.CSS}}</style>
</head>
<body>
<div class="header">
<h1 class="name">{{.Name}}</h1>
<p class="title">{{.Title}}</p>
{{if .Contact}}<p class="contact">{{.Contact}}</p>{{end}}
{{if .Social}}<p class="contact">{{.Social}}</p>{{end}}
</div>
{{if .Summary}}<div class="section">
<h2 class="section-title">Professional Summary</h2>
<p>{{.Summary}}</p>
</div>{{end}}
{{if .Experiences}}<div class="section">
<h2 class="section-title">Work Experience</h2>
{{range .Experiences}}<div class="experience-item">
<span class="item-title">{{.JobTitle}}</span>
<span class="item-date">{{.Dates}}</span>
<div class="item-subtitle">{{.Company}}</div>
{{if .Description}}<div class="item-description">{{.Description}}</div>{{end}}
</div>
{{end}}</div>{{end}}
{{if .Education}}<div class="section">
<h2 class="section-title">Education</h2>
{{range .Education}}<div class="education-item">
<span class="item-title">{{.Degree}}</span>
<span class="item-date">{{.Dates}}</span>
<div class="item-subtitle">{{.Institution}}</div>
{{if .Description}}<div class="item-description">{{.Description}}</div>{{end}}
</div>
{{end}}</div>{{end}}
{{if .Skills}}<div class="section">
<h2 class="section-title">Skills</h2>
<div class="skills-list">
{{range .Skills}}<span class="skill-tag">{{.}}</span>{{end}}
</div>
</div>{{end}}
{{if .Projects}}<div class="section">
<h2 class="section-title">Projects</h2>
{{range .Projects}}<div class="experience-item">
<div class="item-title">{{.Name}}</div>
{{if .Description}}<div class="item-description">{{.Description}}</div>{{end}}
{{if .Technologies}}<div class="item-subtitle">{{.Technologies}}</div>{{end}}
</div>
{{end}}</div>{{end}}
{{if .Certifications}}<div class="section">
<h2 class="section-title">Certifications</h2>
{{range .Certifications}}<div class="experience-item">
<span class="item-title">{{.Name}}</span>
<span class="item-date">{{.IssueDate}}</span>
<div class="item-subtitle">{{.Issuer}}</div>
</div>
{{end}}</div>{{end}}
</body>
</html>`

var pageTmpl = template.Must(template.New("resume").Parse(pageTemplate))

type experienceView struct {
	JobTitle    string
	Company     string
	Dates       string
	Description string
}

type educationView struct {
	Degree      string
	Institution string
	Dates       string
	Description string
}

type projectView struct {
	Name         string
	Description  string
	Technologies string
}

type certificationView struct {
	Name      string
	Issuer    string
	IssueDate string
}

type pageData struct {
	Name           string
	Title          string
	Contact        string
	Social         string
	Summary        string
	CSS            template.CSS
	Experiences    []experienceView
	Education      []educationView
	Skills         []string
	Projects       []projectView
	Certifications []certificationView
}

// RenderHTML renders the resume with the stylesheet of its template.
func RenderHTML(r resumes.Resume) (string, error) {
	css, ok := styleCSS[r.Template]
	if !ok {
		css = styleCSS["modern"]
	}

	data := pageData{
		Name:    fallback(r.FullName, "Your Name"),
		Title:   fallback(r.Title, "Professional Title"),
		Contact: joinNonEmpty(" | ", r.Email, r.Phone, r.City, r.Country),
		Summary: r.Summary,
		CSS:     css,
	}

	var social []string
	if r.LinkedIn != "" {
		social = append(social, "LinkedIn: "+r.LinkedIn)
	}
	if r.GitHub != "" {
		social = append(social, "GitHub: "+r.GitHub)
	}
	if r.Website != "" {
		social = append(social, "Portfolio: "+r.Website)
	}
	data.Social = strings.Join(social, " | ")

	for _, exp := range r.Experiences {
		data.Experiences = append(data.Experiences, experienceView{
			JobTitle:    exp.JobTitle,
			Company:     exp.Company,
			Dates:       dateRange(exp.StartDate, exp.EndDate, exp.IsCurrent),
			Description: exp.Description,
		})
	}
	for _, edu := range r.Education {
		degree := edu.Degree
		if edu.FieldOfStudy != "" {
			degree += " in " + edu.FieldOfStudy
		}
		data.Education = append(data.Education, educationView{
			Degree:      degree,
			Institution: edu.Institution,
			Dates:       dateRange(edu.StartDate, edu.EndDate, false),
			Description: edu.Description,
		})
	}
	for _, sk := range r.Skills {
		label := sk.Name
		if sk.Level != "" {
			label += " (" + sk.Level + ")"
		}
		data.Skills = append(data.Skills, label)
	}
	for _, p := range r.Projects {
		data.Projects = append(data.Projects, projectView{
			Name:         p.Name,
			Description:  p.Description,
			Technologies: p.Technologies,
		})
	}
	for _, cert := range r.Certifications {
		data.Certifications = append(data.Certifications, certificationView{
			Name:      cert.Name,
			Issuer:    cert.Issuer,
			IssueDate: cert.IssueDate,
		})
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func dateRange(start, end string, current bool) string {
	if current || (start != "" && end == "") {
		end = "Present"
	}
	if start == "" && end == "" {
		return ""
	}
	return start + " - " + end
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
