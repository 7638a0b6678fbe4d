package http

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"cv-generator/internal/domain"
	"cv-generator/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type ApplicationProcessor interface {
	Process(ctx context.Context, job domain.JobPosting) (*usecase.ApplicationResult, error)
}

type ProfileReader interface {
	LoadProfile(ctx context.Context) (domain.ProfileSnapshot, error)
}

type Handler struct {
	processor     ApplicationProcessor
	profiles      ProfileReader
	outputDir     string
	defaultSource string
}

func NewHandler(p ApplicationProcessor, profiles ProfileReader, outputDir, defaultSource string) *Handler {
	return &Handler{processor: p, profiles: profiles, outputDir: outputDir, defaultSource: defaultSource}
}

type generateReq struct {
	JobDescription string `json:"job_description"`
	JobSource      string `json:"job_source"`
	// AdSource is the field name older clients send.
	AdSource string `json:"ad_source"`
}

// GenerateApplication runs the whole pipeline for one job posting and
// blocks until every artifact has been attempted.
func (h *Handler) GenerateApplication(c *fiber.Ctx) error {
	var req generateReq
	if err := c.BodyParser(&req); err != nil {
		return &domain.InputValidationError{Field: "body", Message: "invalid payload"}
	}

	source := req.JobSource
	if strings.TrimSpace(source) == "" {
		source = req.AdSource
	}
	if strings.TrimSpace(source) == "" {
		source = h.defaultSource
	}

	res, err := h.processor.Process(c.UserContext(), domain.NewJobPosting(req.JobDescription, source))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ServeOutput streams a generated file. Only plain names inside the output
// directory are served.
func (h *Handler) ServeOutput(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("filename"))
	if err != nil || name == "" || name == "." || name == ".." || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return &domain.InputValidationError{Field: "filename", Message: "invalid file name"}
	}

	path := filepath.Join(h.outputDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fiber.NewError(fiber.StatusNotFound, "file not found")
	}
	return c.SendFile(path)
}

// GetProfile returns the profile snapshot the generators are fed.
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.profiles.LoadProfile(c.UserContext())
	if err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *Handler) Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
