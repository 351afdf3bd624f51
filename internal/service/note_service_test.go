package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/KhadijaXD/NoteNova/internal/dto"
	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"
	"github.com/KhadijaXD/NoteNova/pkg/flashcards"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeAiService replaces the LLM-backed service so note tests stay
// deterministic and offline.
type fakeAiService struct {
	summary    string
	summaryErr error
	cards      []flashcards.Card
	cardsErr   error

	mu          sync.Mutex
	invalidated []string
}

func (f *fakeAiService) GenerateSummary(ctx context.Context, content string) (string, error) {
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return f.summary, nil
}

func (f *fakeAiService) GenerateFlashcards(ctx context.Context, title, content string, tags []string, force bool) ([]flashcards.Card, error) {
	if f.cardsErr != nil {
		return nil, f.cardsErr
	}
	return f.cards, nil
}

func (f *fakeAiService) Invalidate(contentHash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, contentHash)
}

// invalidatedHashes copies the recorded hashes; the consumer calls
// Invalidate from its own goroutine.
func (f *fakeAiService) invalidatedHashes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.invalidated...)
}

func (f *fakeAiService) ContentHash(content string) string {
	return "hash:" + content
}

func (f *fakeAiService) Info(ctx context.Context) *dto.AiInfoResponse {
	return &dto.AiInfoResponse{Provider: "fake", Model: "fake-model", Available: true}
}

type fakePublisher struct {
	published [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.published = append(f.published, payload)
	return nil
}

func (f *fakePublisher) messages(t *testing.T) []dto.NoteChangedMessage {
	t.Helper()
	msgs := make([]dto.NoteChangedMessage, len(f.published))
	for i, payload := range f.published {
		require.NoError(t, json.Unmarshal(payload, &msgs[i]))
	}
	return msgs
}

func newNoteFixture(t *testing.T) (INoteService, *fakeAiService, *fakePublisher) {
	t.Helper()
	ai := &fakeAiService{summary: "generated summary"}
	pub := &fakePublisher{}
	svc := NewNoteService(newTestFactory(t), ai, pub, nopLogger{})
	return svc, ai, pub
}

func TestNoteServiceCreateWithExplicitFields(t *testing.T) {
	svc, _, _ := newNoteFixture(t)
	userId := uuid.New()

	note, err := svc.Create(context.Background(), userId, &dto.CreateNoteRequest{
		Title:   "Sorting",
		Content: "Merge sort splits and merges.",
		Summary: "A note on merge sort.",
		Tags:    []string{"Algorithms", "algorithms", " ", "CS"},
		Flashcards: []dto.FlashcardInput{
			{Question: "What is merge sort?", Answer: "A divide and conquer sort."},
			{Fields: &struct {
				Front string `json:"Front"`
				Back  string `json:"Back"`
			}{Front: "Front question?", Back: "Back answer."}},
			{Question: "", Answer: "dropped without a question"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "A note on merge sort.", note.Summary)
	// tags deduplicated case-insensitively, blanks dropped
	assert.Equal(t, []string{"Algorithms", "CS"}, note.Tags)

	require.Len(t, note.Flashcards, 2)
	assert.Equal(t, "What is merge sort?", note.Flashcards[0].Question)
	assert.Equal(t, "Front question?", note.Flashcards[1].Question)
	assert.Equal(t, "Back answer.", note.Flashcards[1].Answer)

	fetched, err := svc.Show(context.Background(), userId, note.Id)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Algorithms", "CS"}, fetched.Tags)
	assert.Len(t, fetched.Flashcards, 2)
}

func TestNoteServiceCreateInfersTagsAndSummary(t *testing.T) {
	svc, _, _ := newNoteFixture(t)

	note, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{
		Title:   "Cells",
		Content: "The mitochondria is the powerhouse of the cell. Each cell contains mitochondria. Mitochondria produce energy.",
	})
	require.NoError(t, err)

	assert.Equal(t, "generated summary", note.Summary)
	assert.Contains(t, note.Tags, "biology")
	assert.Contains(t, note.Tags, "cell")
}

func TestNoteServiceCreateFailsWhenSummaryFails(t *testing.T) {
	svc, ai, _ := newNoteFixture(t)
	ai.summaryErr = apperrors.E(apperrors.ErrAIService, "provider down")

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{
		Title:   "Unsummarized",
		Content: "Content that could not be summarized.",
	})
	assert.ErrorIs(t, err, apperrors.ErrAIService)
}

func TestNoteServiceUpdateReplacesTagsAndPublishes(t *testing.T) {
	svc, _, pub := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	note, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:   "Draft",
		Content: "original content",
		Summary: "s",
		Tags:    []string{"draft", "old"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userId, &dto.UpdateNoteRequest{
		Id:      note.Id,
		Title:   "Final",
		Content: "revised content",
		Summary: "s2",
		Tags:    []string{"final"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, []string{"final"}, updated.Tags)

	fetched, err := svc.Show(ctx, userId, note.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"final"}, fetched.Tags, "old tags must be detached, not accumulated")

	msgs := pub.messages(t)
	require.Len(t, msgs, 1)
	assert.Equal(t, note.Id, msgs[0].NoteId)
	assert.Equal(t, "hash:original content", msgs[0].ContentHash, "event carries the pre-update content hash")
}

func TestNoteServiceUpdateUnchangedContentKeepsSummary(t *testing.T) {
	svc, ai, pub := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	note, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:   "Stable",
		Content: "same content",
		Summary: "original summary",
	})
	require.NoError(t, err)

	ai.summary = "should not be used"
	updated, err := svc.Update(ctx, userId, &dto.UpdateNoteRequest{
		Id:      note.Id,
		Title:   "Stable v2",
		Content: "same content",
	})
	require.NoError(t, err)

	assert.Equal(t, "original summary", updated.Summary)
	assert.Empty(t, pub.published, "no change event when content is untouched")
}

func TestNoteServiceDeleteTwiceReturnsNotFound(t *testing.T) {
	svc, _, pub := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	note, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:   "Doomed",
		Content: "to be deleted",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userId, note.Id))
	require.ErrorIs(t, svc.Delete(ctx, userId, note.Id), apperrors.ErrNotFound)

	_, err = svc.Show(ctx, userId, note.Id)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	msgs := pub.messages(t)
	require.Len(t, msgs, 1, "delete publishes exactly once")
	assert.Equal(t, "hash:to be deleted", msgs[0].ContentHash)
}

func TestNoteServiceOwnershipIsolation(t *testing.T) {
	svc, _, _ := newNoteFixture(t)
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()

	note, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{
		Title:   "Private",
		Content: "owner only",
	})
	require.NoError(t, err)

	_, err = svc.Show(ctx, intruder, note.Id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Update(ctx, intruder, &dto.UpdateNoteRequest{Id: note.Id, Title: "x", Content: "y"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := svc.List(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNoteServiceListOrdersByRecency(t *testing.T) {
	svc, _, _ := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	first, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "first", Content: "a", Summary: "s"})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "second", Content: "b", Summary: "s"})
	require.NoError(t, err)

	list, err := svc.List(ctx, userId)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.Id, list[0].Id)
	assert.Equal(t, first.Id, list[1].Id)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.Update(ctx, userId, &dto.UpdateNoteRequest{Id: first.Id, Title: "first touched", Content: "a2", Summary: "s"})
	require.NoError(t, err)

	list, err = svc.List(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, first.Id, list[0].Id, "updating bumps a note to the top")
}

func TestNoteServiceSearch(t *testing.T) {
	svc, _, _ := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	seed := []dto.CreateNoteRequest{
		{Title: "Photosynthesis", Content: "Plants convert light.", Summary: "s", Tags: []string{"biology", "plants"}},
		{Title: "Gravity", Content: "Apples fall down.", Summary: "covers Newton", Tags: []string{"physics"}},
		{Title: "Cooking", Content: "Pasta with photosynthesis-free sauce.", Summary: "s", Tags: []string{"food"}},
	}
	for i := range seed {
		_, err := svc.Create(ctx, userId, &seed[i])
		require.NoError(t, err)
	}

	t.Run("keyword matches title and content", func(t *testing.T) {
		results, err := svc.Search(ctx, userId, &dto.SearchNotesRequest{Query: "PHOTOSYNTHESIS"})
		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("keyword matches summary", func(t *testing.T) {
		results, err := svc.Search(ctx, userId, &dto.SearchNotesRequest{Query: "newton"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Gravity", results[0].Title)
	})

	t.Run("keyword matches tag name", func(t *testing.T) {
		results, err := svc.Search(ctx, userId, &dto.SearchNotesRequest{Query: "physics"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Gravity", results[0].Title)
	})

	t.Run("tag filter requires every tag", func(t *testing.T) {
		results, err := svc.Search(ctx, userId, &dto.SearchNotesRequest{Tags: []string{"biology", "plants"}})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Photosynthesis", results[0].Title)

		results, err = svc.Search(ctx, userId, &dto.SearchNotesRequest{Tags: []string{"biology", "physics"}})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("keyword and tags combine", func(t *testing.T) {
		results, err := svc.Search(ctx, userId, &dto.SearchNotesRequest{Query: "photosynthesis", Tags: []string{"food"}})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Cooking", results[0].Title)
	})

	t.Run("no filters returns everything", func(t *testing.T) {
		results, err := svc.Search(ctx, userId, &dto.SearchNotesRequest{})
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})
}

func TestNoteServiceListTags(t *testing.T) {
	svc, _, _ := newNoteFixture(t)
	ctx := context.Background()
	userId := uuid.New()

	_, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title: "a", Content: "c", Summary: "s", Tags: []string{"zeta", "alpha"},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title: "b", Content: "c", Summary: "s", Tags: []string{"zeta"},
	})
	require.NoError(t, err)

	// another user's tags must not leak into the listing
	_, err = svc.Create(ctx, uuid.New(), &dto.CreateNoteRequest{
		Title: "x", Content: "c", Summary: "s", Tags: []string{"other"},
	})
	require.NoError(t, err)

	tags, err := svc.ListTags(ctx, userId)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, dto.TagResponse{Name: "zeta", Count: 2}, tags[0])
	assert.Equal(t, dto.TagResponse{Name: "alpha", Count: 1}, tags[1])
}

func TestNoteServiceGenerateFlashcardsPersists(t *testing.T) {
	svc, ai, _ := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	note, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:   "Atoms",
		Content: "Matter is made of atoms.",
		Summary: "s",
		Flashcards: []dto.FlashcardInput{
			{Question: "Old card?", Answer: "Stale."},
		},
	})
	require.NoError(t, err)

	ai.cards = []flashcards.Card{
		{Question: "What is an atom?", Answer: "The smallest unit of an element."},
		{Question: "What is a proton?", Answer: "A positively charged particle."},
	}

	generated, err := svc.GenerateFlashcards(ctx, userId, note.Id, false)
	require.NoError(t, err)
	require.Len(t, generated, 2)

	fetched, err := svc.Show(ctx, userId, note.Id)
	require.NoError(t, err)
	require.Len(t, fetched.Flashcards, 2, "regeneration replaces the stored cards")
	questions := []string{fetched.Flashcards[0].Question, fetched.Flashcards[1].Question}
	assert.ElementsMatch(t, []string{"What is an atom?", "What is a proton?"}, questions)
}

func TestNoteServiceListFlashcards(t *testing.T) {
	svc, _, _ := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	bare, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "bare", Content: "c", Summary: "s"})
	require.NoError(t, err)

	_, err = svc.ListFlashcards(ctx, userId, bare.Id)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "no flashcards found for this note", apperrors.Message(err))

	stocked, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title: "stocked", Content: "c", Summary: "s",
		Flashcards: []dto.FlashcardInput{{Question: "Q?", Answer: "A."}},
	})
	require.NoError(t, err)

	cards, err := svc.ListFlashcards(ctx, userId, stocked.Id)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Q?", cards[0].Question)
}

func TestNoteServiceGenerateFlashcardsBumpsUpdatedAt(t *testing.T) {
	svc, ai, _ := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	note, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "n", Content: "c", Summary: "s"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	ai.cards = []flashcards.Card{{Question: "Q?", Answer: "A."}}
	_, err = svc.GenerateFlashcards(ctx, userId, note.Id, false)
	require.NoError(t, err)

	fetched, err := svc.Show(ctx, userId, note.Id)
	require.NoError(t, err)
	assert.True(t, fetched.UpdatedAt.After(note.UpdatedAt), "regenerating cards must move updated_at forward")
}

func TestNoteServiceGenerateFlashcardsPropagatesFailure(t *testing.T) {
	svc, ai, _ := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	note, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "n", Content: "c", Summary: "s"})
	require.NoError(t, err)

	ai.cardsErr = apperrors.E(apperrors.ErrAIService, "provider unavailable")
	_, err = svc.GenerateFlashcards(ctx, userId, note.Id, false)
	assert.ErrorIs(t, err, apperrors.ErrAIService)
}

func TestNoteServiceRegenerateSummary(t *testing.T) {
	svc, ai, _ := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	note, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:   "n",
		Content: "The cell cycle proceeds through interphase, mitosis, and cytokinesis, each phase regulated by checkpoints.",
		Summary: "old",
	})
	require.NoError(t, err)

	ai.summary = "fresh summary"
	updated, err := svc.RegenerateSummary(ctx, userId, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "fresh summary", updated.Summary)

	t.Run("provider failure surfaces", func(t *testing.T) {
		ai.summaryErr = apperrors.E(apperrors.ErrAIService, "down")
		_, err := svc.RegenerateSummary(ctx, userId, note.Id)
		assert.ErrorIs(t, err, apperrors.ErrAIService)
	})
}

func TestNoteServiceRegenerateSummaryRejectsShortContent(t *testing.T) {
	svc, _, _ := newNoteFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	note, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:   "n",
		Content: "too short to summarize",
		Summary: "a carefully hand-written summary",
	})
	require.NoError(t, err)

	_, err = svc.RegenerateSummary(ctx, userId, note.Id)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	fetched, err := svc.Show(ctx, userId, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "a carefully hand-written summary", fetched.Summary, "stored summary must survive a refused regeneration")
}
