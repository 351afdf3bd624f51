package controller

import (
	"strconv"
	"strings"

	"github.com/KhadijaXD/NoteNova/internal/dto"
	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"
	"github.com/KhadijaXD/NoteNova/internal/pkg/serverutils"
	"github.com/KhadijaXD/NoteNova/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	ListTags(ctx *fiber.Ctx) error
	ListFlashcards(ctx *fiber.Ctx) error
	GenerateFlashcards(ctx *fiber.Ctx) error
	RegenerateSummary(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	r.Get("/tags", serverutils.JwtMiddleware, c.ListTags)
	r.Get("/search", serverutils.JwtMiddleware, c.Search)

	h := r.Group("/notes")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/flashcards", c.ListFlashcards)
	h.Get("/:id/flashcards/:cardId", c.ListFlashcards)
	h.Post("/:id/flashcards/generate", c.GenerateFlashcards)
	h.Post("/:id/regenerate-summary", c.RegenerateSummary)
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, apperrors.E(apperrors.ErrUnauthorized, "invalid user identity")
	}
	return userId, nil
}

func noteIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.E(apperrors.ErrNotFound, "note not found")
	}
	return id, nil
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}

func (c *noteController) Search(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	req := dto.SearchNotesRequest{
		Query: ctx.Query("q"),
	}
	if tagsParam := ctx.Query("tags"); tagsParam != "" {
		for _, tag := range strings.Split(tagsParam, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	res, err := c.noteService.Search(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search notes", res))
}

func (c *noteController) ListTags(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.ListTags(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list tags", res))
}

// ListFlashcards serves the stored cards, never triggering generation.
// With a cardId it returns the single-card study view.
func (c *noteController) ListFlashcards(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	cards, err := c.noteService.ListFlashcards(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	if cardIdParam := ctx.Params("cardId"); cardIdParam != "" {
		index, err := strconv.Atoi(cardIdParam)
		if err != nil || index < 0 || index >= len(cards) {
			return apperrors.E(apperrors.ErrNotFound, "flashcard not found")
		}
		return ctx.JSON(serverutils.SuccessResponse("Success show flashcard", dto.FlashcardStudyResponse{
			Card:         cards[index],
			Total:        len(cards),
			CurrentIndex: index,
		}))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list flashcards", cards))
}

func (c *noteController) GenerateFlashcards(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateFlashcardsRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.noteService.GenerateFlashcards(ctx.Context(), userId, id, req.Force)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate flashcards", res))
}

func (c *noteController) RegenerateSummary(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.RegenerateSummary(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success regenerate summary", res))
}
