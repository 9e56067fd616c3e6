package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mahdi67436/cv-maker-web/internal/resumes"
	"github.com/mahdi67436/cv-maker-web/internal/shared/metrics"
	"github.com/mahdi67436/cv-maker-web/internal/shared/storage/object"
	"github.com/mahdi67436/cv-maker-web/internal/shared/telemetry"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeHTML = "text/html; charset=utf-8"
)

// Document is a finished export ready to stream back to the client.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

type Service struct {
	Resumes *resumes.Service
	Store   object.ObjectStore
	PDF     PDFRenderer
	now     func() time.Time
}

func NewService(rs *resumes.Service, store object.ObjectStore, pdf PDFRenderer) *Service {
	return &Service{Resumes: rs, Store: store, PDF: pdf, now: time.Now}
}

func (s *Service) ExportHTML(ctx context.Context, userID, id string) (Document, error) {
	metrics.IncExportStarted()
	resume, err := s.Resumes.Get(ctx, userID, id)
	if err != nil {
		return Document{}, err
	}
	html, err := RenderHTML(resume)
	if err != nil {
		metrics.IncExportFailed()
		return Document{}, fmt.Errorf("render html: %w", err)
	}
	return s.htmlDocument(ctx, userID, resume.ID, html), nil
}

func (s *Service) htmlDocument(ctx context.Context, userID, resumeID, html string) Document {
	doc := Document{
		FileName:    s.fileName("html"),
		ContentType: mimeHTML,
		Data:        []byte(html),
	}
	s.finish(ctx, userID, resumeID, doc)
	return doc
}

func (s *Service) ExportPDF(ctx context.Context, userID, id string) (Document, error) {
	metrics.IncExportStarted()
	resume, err := s.Resumes.Get(ctx, userID, id)
	if err != nil {
		return Document{}, err
	}
	html, err := RenderHTML(resume)
	if err != nil {
		metrics.IncExportFailed()
		return Document{}, fmt.Errorf("render html: %w", err)
	}
	if s.PDF == nil {
		// No browser configured, hand back the rendered page instead.
		return s.htmlDocument(ctx, userID, resume.ID, html), nil
	}
	start := metrics.NowMillis()
	data, err := s.PDF.Render(ctx, html)
	if err != nil {
		metrics.IncExportFailed()
		telemetry.Warn("export.pdf", map[string]any{"resumeId": resume.ID, "error": err.Error()})
		return s.htmlDocument(ctx, userID, resume.ID, html), nil
	}
	metrics.ObserveExportDurationMs(metrics.NowMillis() - start)
	doc := Document{
		FileName:    s.fileName("pdf"),
		ContentType: mimePDF,
		Data:        data,
	}
	s.finish(ctx, userID, resume.ID, doc)
	return doc, nil
}

func (s *Service) ExportDOCX(ctx context.Context, userID, id string) (Document, error) {
	metrics.IncExportStarted()
	resume, err := s.Resumes.Get(ctx, userID, id)
	if err != nil {
		return Document{}, err
	}
	data, err := BuildDOCX(resume)
	if err != nil {
		metrics.IncExportFailed()
		return Document{}, fmt.Errorf("build docx: %w", err)
	}
	doc := Document{
		FileName:    s.fileName("docx"),
		ContentType: mimeDOCX,
		Data:        data,
	}
	s.finish(ctx, userID, resume.ID, doc)
	return doc, nil
}

// finish archives a copy of the export and bumps the download counter. Both
// are best effort, the caller already has the document bytes.
func (s *Service) finish(ctx context.Context, userID, resumeID string, doc Document) {
	key := fmt.Sprintf("exports/%s/%s/%s", userID, resumeID, doc.FileName)
	if _, err := s.Store.SaveWithKey(ctx, key, doc.ContentType, bytes.NewReader(doc.Data)); err != nil {
		telemetry.Warn("export.archive", map[string]any{"key": key, "error": err.Error()})
	}
	s.Resumes.RecordDownload(ctx, resumeID)
}

func (s *Service) fileName(ext string) string {
	return "resume_" + s.now().Format("20060102_150405") + "." + ext
}
