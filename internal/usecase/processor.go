package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/model"
	"resume-renderer/internal/render"

	"github.com/google/uuid"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type ExportsRepo interface {
	Save(ctx context.Context, j *domain.ExportJob) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error)
}

// SnapshotSource loads the stored content and profile snapshot of a resume.
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context, resumeID uuid.UUID) (*model.RenderRequest, error)
}

var (
	ErrNoSnapshot = errors.New("export has neither a resume id nor an inline request")
	ErrInvalidPDF = errors.New("invalid PDF output")
)

var pdfMagic = []byte("%PDF")

type Options struct {
	ArtifactDir string
	Attempts    int
	Backoff     time.Duration
}

type Processor struct {
	renderer    Renderer
	repo        ExportsRepo
	snapshots   SnapshotSource
	artifactDir string
	attempts    int
	backoff     time.Duration
}

func NewProcessor(r Renderer, repo ExportsRepo, snapshots SnapshotSource, opts Options) *Processor {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.ArtifactDir == "" {
		opts.ArtifactDir = filepath.Join("resume-data", "exports")
	}
	return &Processor{
		renderer:    r,
		repo:        repo,
		snapshots:   snapshots,
		artifactDir: opts.ArtifactDir,
		attempts:    opts.Attempts,
		backoff:     opts.Backoff,
	}
}

// Preview returns the markup shown in the browser preview. Export renders
// through the same call, so what the user sees is what gets printed.
func (p *Processor) Preview(req *model.RenderRequest) (string, error) {
	if req == nil {
		req = &model.RenderRequest{}
	}
	return render.Render(&req.Content, &req.Profile, req.Template)
}

// PreviewStored renders the stored snapshot of a resume. An empty template
// keeps the snapshot's own template preference.
func (p *Processor) PreviewStored(ctx context.Context, resumeID uuid.UUID, template string) (string, error) {
	req, err := p.loadSnapshot(ctx, resumeID)
	if err != nil {
		return "", err
	}
	if template != "" {
		override := *req
		override.Template = template
		req = &override
	}
	return p.Preview(req)
}

// RenderPDF renders the request and converts it to PDF.
func (p *Processor) RenderPDF(ctx context.Context, req *model.RenderRequest) ([]byte, error) {
	html, err := p.Preview(req)
	if err != nil {
		return nil, err
	}
	pdf, _, err := p.convert(ctx, html)
	return pdf, err
}

// convert runs the renderer with retry and validation, returning the number
// of attempts it took.
func (p *Processor) convert(ctx context.Context, html string) ([]byte, int, error) {
	if p.renderer == nil {
		return nil, 0, errors.New("no PDF renderer configured")
	}

	var renderErr error
	for i := 0; i < p.attempts; i++ {
		pdf, err := p.renderer.RenderHTMLToPDF(ctx, html)
		if err == nil {
			if bytes.HasPrefix(pdf, pdfMagic) {
				return pdf, i + 1, nil
			}
			err = fmt.Errorf("%w (len=%d)", ErrInvalidPDF, len(pdf))
		}
		renderErr = err
		slog.Warn("PDF render attempt failed", "attempt", i+1, "error", err)

		// exponential backoff before retrying
		if i < p.attempts-1 {
			select {
			case <-time.After(p.backoff << i):
			case <-ctx.Done():
				return nil, i + 1, ctx.Err()
			}
		}
	}
	return nil, p.attempts, fmt.Errorf("render failed after %d attempts: %w", p.attempts, renderErr)
}

// Process runs one export job to completion. The HTML artifact is written
// before conversion so it survives a failed print.
func (p *Processor) Process(ctx context.Context, job *domain.ExportJob) error {
	if job.Metadata == nil {
		job.Metadata = map[string]interface{}{}
	}
	job.Status = domain.ExportRunning
	job.Error = ""
	if err := p.save(ctx, job); err != nil {
		return err
	}

	err := p.process(ctx, job)
	if err != nil {
		job.Status = domain.ExportFailed
		job.Error = err.Error()
		slog.Error("export failed", "job_id", job.ID, "error", err)
	} else {
		job.Status = domain.ExportCompleted
		slog.Info("export completed", "job_id", job.ID, "pdf", job.PDFPath)
	}
	job.UpdatedAt = time.Now().UTC()

	if saveErr := p.save(ctx, job); saveErr != nil {
		return errors.Join(err, saveErr)
	}
	return err
}

func (p *Processor) process(ctx context.Context, job *domain.ExportJob) error {
	req, err := p.resolve(ctx, job)
	if err != nil {
		return err
	}
	if job.Template != "" {
		req.Template = job.Template
	}
	job.Metadata["template"] = string(render.SelectTemplate(req.Template).Name)

	html, err := p.Preview(req)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.artifactDir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	htmlPath := filepath.Join(p.artifactDir, job.ID.String()+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write html artifact: %w", err)
	}
	job.HTMLPath = htmlPath

	pdf, attempts, err := p.convert(ctx, html)
	job.Metadata["attempts"] = attempts
	if err != nil {
		return err
	}

	pdfPath := filepath.Join(p.artifactDir, job.ID.String()+".pdf")
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("write pdf artifact: %w", err)
	}
	job.PDFPath = pdfPath
	job.Metadata["pdf_bytes"] = len(pdf)
	return nil
}

func (p *Processor) resolve(ctx context.Context, job *domain.ExportJob) (*model.RenderRequest, error) {
	if job.Request != nil {
		req := *job.Request
		return &req, nil
	}
	if job.ResumeID == nil {
		return nil, ErrNoSnapshot
	}
	stored, err := p.loadSnapshot(ctx, *job.ResumeID)
	if err != nil {
		return nil, err
	}
	req := *stored
	return &req, nil
}

func (p *Processor) loadSnapshot(ctx context.Context, resumeID uuid.UUID) (*model.RenderRequest, error) {
	if p.snapshots == nil {
		return nil, fmt.Errorf("load snapshot %s: no snapshot source configured", resumeID)
	}
	req, err := p.snapshots.LoadSnapshot(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", resumeID, err)
	}
	return req, nil
}

func (p *Processor) save(ctx context.Context, job *domain.ExportJob) error {
	if p.repo == nil {
		return nil
	}
	if err := p.repo.Save(ctx, job); err != nil {
		return fmt.Errorf("save export %s: %w", job.ID, err)
	}
	return nil
}
