package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"resume-renderer/internal/adapter/repository"
	"resume-renderer/internal/domain"
	"resume-renderer/internal/model"
	"resume-renderer/internal/render"
	"resume-renderer/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	processor *usecase.Processor
	repo      usecase.ExportsRepo
	validate  *validator.Validate
}

func NewHandler(p *usecase.Processor, r usecase.ExportsRepo) *Handler {
	return &Handler{processor: p, repo: r, validate: validator.New()}
}

// Register mounts the render and export routes.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/templates", h.ListTemplates)
	r.Post("/render/preview", h.RenderPreview)
	r.Post("/render/pdf", h.RenderPDF)
	r.Get("/resumes/:id/preview", h.StoredPreview)
	r.Post("/exports", h.StartExport)
	r.Get("/exports/:id", h.GetExport)
}

type templateInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	out := []templateInfo{}
	for _, s := range render.Templates() {
		out = append(out, templateInfo{Name: string(s.Name), Title: s.Title})
	}
	return c.JSON(fiber.Map{"templates": out})
}

func (h *Handler) RenderPreview(c *fiber.Ctx) error {
	req, err := model.DecodeRenderRequest(c.Body())
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	html, err := h.processor.Preview(req)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

func (h *Handler) RenderPDF(c *fiber.Ctx) error {
	req, err := model.DecodeRenderRequest(c.Body())
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	pdf, err := h.processor.RenderPDF(c.UserContext(), req)
	if err != nil {
		slog.Error("pdf render failed", "error", err)
		return fail(c, fiber.StatusBadGateway, "pdf rendering failed")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="resume.pdf"`)
	return c.Send(pdf)
}

func (h *Handler) StoredPreview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid resume id")
	}
	html, err := h.processor.PreviewStored(c.UserContext(), id, c.Query("template"))
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "resume not found")
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

type startExportReq struct {
	ResumeID string          `json:"resumeId" validate:"omitempty,uuid"`
	Template string          `json:"template,omitempty" validate:"omitempty,max=64"`
	Request  json.RawMessage `json:"request,omitempty"`
}

func (r startExportReq) hasInline() bool {
	return len(r.Request) > 0 && string(r.Request) != "null"
}

func (h *Handler) StartExport(c *fiber.Ctx) error {
	var req startExportReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if req.ResumeID == "" && !req.hasInline() {
		return fail(c, fiber.StatusBadRequest, "resumeId or request is required")
	}

	now := time.Now().UTC()
	job := &domain.ExportJob{
		ID:        uuid.New(),
		Template:  req.Template,
		Status:    domain.ExportPending,
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.ResumeID != "" {
		rid := uuid.MustParse(req.ResumeID)
		job.ResumeID = &rid
	}
	if req.hasInline() {
		inline, err := model.DecodeRenderRequest(req.Request)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		job.Request = inline
	}

	if h.repo != nil {
		if err := h.repo.Save(c.UserContext(), job); err != nil {
			slog.Error("failed to save export", "job_id", job.ID, "error", err)
			return fail(c, fiber.StatusInternalServerError, "could not queue export")
		}
	}

	jobID := job.ID

	// spawn background processing
	go func(j *domain.ExportJob) {
		if err := h.processor.Process(context.Background(), j); err != nil {
			slog.Warn("export job failed", "job_id", j.ID, "error", err)
		}
	}(job)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobId": jobID.String(), "status": domain.ExportPending})
}

func (h *Handler) GetExport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid export id")
	}
	if h.repo == nil {
		return fail(c, fiber.StatusNotFound, "export not found")
	}
	job, err := h.repo.Get(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "export not found")
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(job)
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
