package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/KhadijaXD/NoteNova/internal/dto"
	"github.com/KhadijaXD/NoteNova/internal/entity"
	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"
	"github.com/KhadijaXD/NoteNova/internal/pkg/logger"
	"github.com/KhadijaXD/NoteNova/internal/repository/unitofwork"
	"github.com/KhadijaXD/NoteNova/pkg/extract"
	"github.com/KhadijaXD/NoteNova/pkg/tagging"

	"github.com/google/uuid"
)

type IIngestService interface {
	// Ingest turns an uploaded document into a note: extract text, infer
	// tags, summarize, persist.
	Ingest(ctx context.Context, userId uuid.UUID, filePath, originalName, mimeType string) (*dto.NoteResponse, error)
}

type ingestService struct {
	uowFactory unitofwork.RepositoryFactory
	aiService  IAiService
	log        logger.ILogger
}

func NewIngestService(uowFactory unitofwork.RepositoryFactory, aiService IAiService, log logger.ILogger) IIngestService {
	return &ingestService{
		uowFactory: uowFactory,
		aiService:  aiService,
		log:        log,
	}
}

func (s *ingestService) Ingest(ctx context.Context, userId uuid.UUID, filePath, originalName, mimeType string) (*dto.NoteResponse, error) {
	text, err := extract.Text(filePath, mimeType)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			return nil, apperrors.E(apperrors.ErrUnsupportedFormat, "unsupported file type %s", filepath.Ext(originalName))
		}
		return nil, apperrors.E(apperrors.ErrExtraction, "failed to extract text from %s", originalName)
	}

	if strings.TrimSpace(text) == "" {
		return nil, apperrors.E(apperrors.ErrExtraction, "no text content found in %s", originalName)
	}

	title := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	tagNames := tagging.InferTags(text)

	summary, err := s.aiService.GenerateSummary(ctx, text)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	note := entity.Note{
		Id:         uuid.New(),
		UserId:     userId,
		Title:      title,
		Content:    text,
		Summary:    summary,
		SourceFile: originalName,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	tags, err := resolveTags(ctx, uow, tagNames)
	if err != nil {
		return nil, err
	}
	if err := uow.NoteRepository().ReplaceTags(ctx, note.Id, tags); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	note.Tags = tags
	s.log.Info("ingest_service", "ingested uploaded document", map[string]interface{}{
		"file":    originalName,
		"note_id": note.Id.String(),
		"tags":    len(tags),
	})
	return toNoteResponse(&note), nil
}
