package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/KhadijaXD/NoteNova/internal/dto"
	"github.com/KhadijaXD/NoteNova/internal/entity"
	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"
	"github.com/KhadijaXD/NoteNova/internal/pkg/logger"
	"github.com/KhadijaXD/NoteNova/internal/repository/specification"
	"github.com/KhadijaXD/NoteNova/internal/repository/unitofwork"
	"github.com/KhadijaXD/NoteNova/pkg/tagging"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Search(ctx context.Context, userId uuid.UUID, req *dto.SearchNotesRequest) ([]*dto.NoteResponse, error)
	// ListTags aggregates the caller's tag usage, most used first.
	ListTags(ctx context.Context, userId uuid.UUID) ([]dto.TagResponse, error)
	// ListFlashcards returns the stored cards without generating; a note
	// with no cards is reported as not found.
	ListFlashcards(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) ([]dto.FlashcardResponse, error)
	GenerateFlashcards(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, force bool) ([]dto.FlashcardResponse, error)
	RegenerateSummary(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.NoteResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	aiService        IAiService
	publisherService IPublisherService
	log              logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	aiService IAiService,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		aiService:        aiService,
		publisherService: publisherService,
		log:              log,
	}
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	tagNames := req.Tags
	if len(tagNames) == 0 {
		tagNames = tagging.InferTags(req.Content)
	}

	summary := req.Summary
	if summary == "" {
		generated, err := c.aiService.GenerateSummary(ctx, req.Content)
		if err != nil {
			return nil, err
		}
		summary = generated
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		Content:   req.Content,
		Summary:   summary,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
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

	cards := flashcardEntities(note.Id, req.Flashcards)
	if err := uow.FlashcardRepository().CreateBatch(ctx, cards); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	note.Tags = tags
	note.Flashcards = cards
	return toNoteResponse(&note), nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Preload{Associations: []string{"Tags", "Flashcards"}},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = toNoteResponse(note)
	}
	return responses, nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwnedNote(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwnedNote(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	oldHash := c.aiService.ContentHash(note.Content)
	contentChanged := note.Content != req.Content

	tagNames := req.Tags
	if len(tagNames) == 0 {
		tagNames = tagging.InferTags(req.Content)
	}

	summary := req.Summary
	if summary == "" {
		if contentChanged {
			generated, err := c.aiService.GenerateSummary(ctx, req.Content)
			if err != nil {
				return nil, err
			}
			summary = generated
		} else {
			summary = note.Summary
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	note.Title = req.Title
	note.Content = req.Content
	note.Summary = summary
	note.UpdatedAt = time.Now()
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	tags, err := resolveTags(ctx, uow, tagNames)
	if err != nil {
		return nil, err
	}
	if err := uow.NoteRepository().ReplaceTags(ctx, note.Id, tags); err != nil {
		return nil, err
	}
	note.Tags = tags

	if req.Flashcards != nil {
		if err := uow.FlashcardRepository().DeleteAllByNoteId(ctx, note.Id); err != nil {
			return nil, err
		}
		cards := flashcardEntities(note.Id, req.Flashcards)
		if err := uow.FlashcardRepository().CreateBatch(ctx, cards); err != nil {
			return nil, err
		}
		note.Flashcards = cards
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if contentChanged {
		c.publishChange(ctx, note.Id, oldHash)
	}
	return toNoteResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return apperrors.E(apperrors.ErrNotFound, "note not found")
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	c.publishChange(ctx, id, c.aiService.ContentHash(note.Content))
	return nil
}

func (c *noteService) Search(ctx context.Context, userId uuid.UUID, req *dto.SearchNotesRequest) ([]*dto.NoteResponse, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.Preload{Associations: []string{"Tags", "Flashcards"}},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if strings.TrimSpace(req.Query) != "" {
		specs = append(specs, specification.MatchesKeyword{Keyword: strings.TrimSpace(req.Query)})
	}
	if len(req.Tags) > 0 {
		specs = append(specs, specification.HasAllTags{Tags: req.Tags})
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = toNoteResponse(note)
	}
	return responses, nil
}

func (c *noteService) ListTags(ctx context.Context, userId uuid.UUID) ([]dto.TagResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	usages, err := uow.TagRepository().UsageCounts(ctx, userId)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TagResponse, len(usages))
	for i, usage := range usages {
		responses[i] = dto.TagResponse{Name: usage.Name, Count: usage.Count}
	}
	return responses, nil
}

func (c *noteService) ListFlashcards(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) ([]dto.FlashcardResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwnedNote(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}

	if len(note.Flashcards) == 0 {
		return nil, apperrors.E(apperrors.ErrNotFound, "no flashcards found for this note")
	}

	responses := make([]dto.FlashcardResponse, len(note.Flashcards))
	for i, card := range note.Flashcards {
		responses[i] = dto.FlashcardResponse{Id: card.Id, Question: card.Question, Answer: card.Answer}
	}
	return responses, nil
}

func (c *noteService) GenerateFlashcards(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, force bool) ([]dto.FlashcardResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwnedNote(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}

	tagNames := make([]string, len(note.Tags))
	for i, tag := range note.Tags {
		tagNames[i] = tag.Name
	}

	cards, err := c.aiService.GenerateFlashcards(ctx, note.Title, note.Content, tagNames, force)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.FlashcardRepository().DeleteAllByNoteId(ctx, noteId); err != nil {
		return nil, err
	}

	entities := make([]*entity.Flashcard, len(cards))
	for i, card := range cards {
		entities[i] = &entity.Flashcard{
			Id:        uuid.New(),
			NoteId:    noteId,
			Question:  card.Question,
			Answer:    card.Answer,
			CreatedAt: time.Now(),
		}
	}
	if err := uow.FlashcardRepository().CreateBatch(ctx, entities); err != nil {
		return nil, err
	}

	// Replacing cards is a note mutation; recency ordering must see it.
	note.UpdatedAt = time.Now()
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	responses := make([]dto.FlashcardResponse, len(entities))
	for i, card := range entities {
		responses[i] = dto.FlashcardResponse{Id: card.Id, Question: card.Question, Answer: card.Answer}
	}
	return responses, nil
}

func (c *noteService) RegenerateSummary(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwnedNote(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}

	// Refuse rather than clobber a stored summary with the stock
	// short-content message.
	if len(strings.TrimSpace(note.Content)) < minAIContentLength {
		return nil, apperrors.E(apperrors.ErrValidation, "content is too short to generate a summary")
	}

	summary, err := c.aiService.GenerateSummary(ctx, note.Content)
	if err != nil {
		return nil, err
	}

	note.Summary = summary
	note.UpdatedAt = time.Now()
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// findOwnedNote loads a note with its associations, enforcing ownership.
func (c *noteService) findOwnedNote(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
		specification.Preload{Associations: []string{"Tags", "Flashcards"}},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperrors.E(apperrors.ErrNotFound, "note not found")
	}
	return note, nil
}

// resolveTags maps tag names to entities, creating missing ones. Names
// are deduplicated case-insensitively; the first spelling wins.
func resolveTags(ctx context.Context, uow unitofwork.UnitOfWork, names []string) ([]*entity.Tag, error) {
	seen := make(map[string]bool, len(names))
	tags := make([]*entity.Tag, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		tag, err := uow.TagRepository().FindOne(ctx, specification.ByName{Name: name})
		if err != nil {
			return nil, err
		}
		if tag == nil {
			tag = &entity.Tag{Id: uuid.New(), Name: name}
			if err := uow.TagRepository().Create(ctx, tag); err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (c *noteService) publishChange(ctx context.Context, noteId uuid.UUID, contentHash string) {
	payload, err := json.Marshal(dto.NoteChangedMessage{NoteId: noteId, ContentHash: contentHash})
	if err != nil {
		return
	}
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.log.Warn("note_service", "failed to publish note change", map[string]interface{}{"note_id": noteId.String(), "error": err.Error()})
	}
}

func flashcardEntities(noteId uuid.UUID, inputs []dto.FlashcardInput) []*entity.Flashcard {
	cards := make([]*entity.Flashcard, 0, len(inputs))
	for _, input := range inputs {
		question, answer := input.Normalize()
		if question == "" || answer == "" {
			continue
		}
		cards = append(cards, &entity.Flashcard{
			Id:        uuid.New(),
			NoteId:    noteId,
			Question:  question,
			Answer:    answer,
			CreatedAt: time.Now(),
		})
	}
	return cards
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	tags := make([]string, len(note.Tags))
	for i, tag := range note.Tags {
		tags[i] = tag.Name
	}

	cards := make([]dto.FlashcardResponse, len(note.Flashcards))
	for i, card := range note.Flashcards {
		cards[i] = dto.FlashcardResponse{Id: card.Id, Question: card.Question, Answer: card.Answer}
	}

	return &dto.NoteResponse{
		Id:         note.Id,
		Title:      note.Title,
		Content:    note.Content,
		Summary:    note.Summary,
		SourceFile: note.SourceFile,
		Tags:       tags,
		Flashcards: cards,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}
