package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUpload(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestServiceTextFile(t *testing.T) {
	ai := &fakeAiService{summary: "summary of the upload"}
	svc := NewIngestService(newTestFactory(t), ai, nopLogger{})
	userId := uuid.New()

	content := "The mitochondria is the powerhouse of the cell. Organelle structures keep the cytoplasm organized."
	path := writeUpload(t, "biology-notes.txt", content)

	note, err := svc.Ingest(context.Background(), userId, path, "biology-notes.txt", "text/plain")
	require.NoError(t, err)

	assert.Equal(t, "biology-notes", note.Title)
	assert.Equal(t, content, note.Content)
	assert.Equal(t, "summary of the upload", note.Summary)
	assert.Equal(t, "biology-notes.txt", note.SourceFile)
	assert.Contains(t, note.Tags, "cell")
}

func TestIngestServiceUnsupportedFormat(t *testing.T) {
	svc := NewIngestService(newTestFactory(t), &fakeAiService{}, nopLogger{})
	path := writeUpload(t, "slides.pptx", "binary stuff")

	_, err := svc.Ingest(context.Background(), uuid.New(), path, "slides.pptx", "")
	require.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
	assert.Contains(t, apperrors.Message(err), ".pptx")
}

func TestIngestServiceEmptyDocument(t *testing.T) {
	svc := NewIngestService(newTestFactory(t), &fakeAiService{}, nopLogger{})
	path := writeUpload(t, "blank.txt", "   \n\t  ")

	_, err := svc.Ingest(context.Background(), uuid.New(), path, "blank.txt", "text/plain")
	assert.ErrorIs(t, err, apperrors.ErrExtraction)
}

func TestIngestServiceFailsWhenSummaryFails(t *testing.T) {
	ai := &fakeAiService{summaryErr: apperrors.E(apperrors.ErrAIService, "down")}
	svc := NewIngestService(newTestFactory(t), ai, nopLogger{})
	path := writeUpload(t, "doc.txt", "Some perfectly extractable content.")

	_, err := svc.Ingest(context.Background(), uuid.New(), path, "doc.txt", "text/plain")
	assert.ErrorIs(t, err, apperrors.ErrAIService)
}
