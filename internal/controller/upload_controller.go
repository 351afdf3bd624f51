package controller

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"
	"github.com/KhadijaXD/NoteNova/internal/pkg/serverutils"
	"github.com/KhadijaXD/NoteNova/internal/service"
	"github.com/KhadijaXD/NoteNova/pkg/extract"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type uploadController struct {
	ingestService service.IIngestService
	uploadDir     string
}

func NewUploadController(ingestService service.IIngestService, uploadDir string) IUploadController {
	return &uploadController{
		ingestService: ingestService,
		uploadDir:     uploadDir,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", serverutils.JwtMiddleware, c.Upload)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return apperrors.E(apperrors.ErrValidation, "file is required")
	}

	// Reject unsupported formats before anything touches disk.
	mimeType := file.Header.Get("Content-Type")
	if !extract.Supported(mimeType, file.Filename) {
		return apperrors.E(apperrors.ErrUnsupportedFormat, "unsupported file type %s", filepath.Ext(file.Filename))
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return err
	}

	// Random prefix avoids collisions between same-named uploads.
	savedPath := filepath.Join(c.uploadDir, fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(file.Filename)))
	if err := ctx.SaveFile(file, savedPath); err != nil {
		return err
	}
	defer os.Remove(savedPath)

	res, err := c.ingestService.Ingest(ctx.Context(), userId, savedPath, file.Filename, mimeType)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload note", res))
}
