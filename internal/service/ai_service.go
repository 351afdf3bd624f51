package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/KhadijaXD/NoteNova/internal/dto"
	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"
	"github.com/KhadijaXD/NoteNova/internal/pkg/logger"
	"github.com/KhadijaXD/NoteNova/pkg/flashcards"
	"github.com/KhadijaXD/NoteNova/pkg/llm"

	gocache "github.com/patrickmn/go-cache"
)

// minAIContentLength gates LLM calls: shorter content produces junk
// summaries and junk cards.
const minAIContentLength = 100

const shortContentSummary = "No summary generated (content too short)."

const availabilityCacheKey = "provider_available"

var summaryLeadIns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(here is|this is|this document provides|this summary presents|below is|following is).*?summary[^.]*\.`),
	regexp.MustCompile(`(?i)^in summary,?\s*`),
	regexp.MustCompile(`(?i)^to summarize,?\s*`),
}

type IAiService interface {
	// GenerateSummary returns a short summary of content, or a stock
	// message when the content is too short to summarize.
	GenerateSummary(ctx context.Context, content string) (string, error)
	GenerateFlashcards(ctx context.Context, title, content string, tags []string, force bool) ([]flashcards.Card, error)
	// Invalidate drops cached flashcards for the given content hash.
	Invalidate(contentHash string)
	ContentHash(content string) string
	Info(ctx context.Context) *dto.AiInfoResponse
}

type aiService struct {
	provider          llm.Provider
	flashcardCache    *gocache.Cache
	availabilityCache *gocache.Cache
	log               logger.ILogger
}

func NewAiService(provider llm.Provider, flashcardCache, availabilityCache *gocache.Cache, log logger.ILogger) IAiService {
	return &aiService{
		provider:          provider,
		flashcardCache:    flashcardCache,
		availabilityCache: availabilityCache,
		log:               log,
	}
}

func (s *aiService) GenerateSummary(ctx context.Context, content string) (string, error) {
	if len(strings.TrimSpace(content)) < minAIContentLength {
		return shortContentSummary, nil
	}

	prompt := fmt.Sprintf("Write a concise 3-4 sentence summary of the main content and key findings in this document. "+
		"Focus exclusively on the substantive information, core arguments, or primary conclusions.\n\n"+
		"IMPORTANT: Do NOT begin with phrases like \"Here is a summary\" or \"This document\". Start directly with the key points.\n\n"+
		"Document:\n%s", truncate(content, 4000))

	summary, err := s.provider.Generate(ctx, prompt, llm.WithMaxTokens(1000), llm.WithTemperature(0.5))
	if err != nil {
		s.log.Error("ai_service", "summary generation failed", map[string]interface{}{"error": err.Error()})
		return "", apperrors.E(apperrors.ErrAIService, "failed to generate summary with %s. Please try again later", s.provider.Model())
	}

	return cleanSummary(summary), nil
}

func (s *aiService) GenerateFlashcards(ctx context.Context, title, content string, tags []string, force bool) ([]flashcards.Card, error) {
	if len(strings.TrimSpace(content)) < minAIContentLength {
		return nil, apperrors.E(apperrors.ErrValidation, "content is too short for flashcard generation")
	}

	cacheKey := s.ContentHash(content)
	if !force {
		if cached, found := s.flashcardCache.Get(cacheKey); found {
			s.log.Info("ai_service", "using cached flashcards", map[string]interface{}{"key": cacheKey})
			return cached.([]flashcards.Card), nil
		}
	}

	if !s.available(ctx) {
		return nil, apperrors.E(apperrors.ErrAIService, "AI provider unavailable, cannot generate flashcards")
	}

	tagsInfo := ""
	if len(tags) > 0 {
		tagsInfo = fmt.Sprintf("The note is tagged with: %s.", strings.Join(tags, ", "))
	}
	if title == "" {
		title = "Untitled Note"
	}

	prompt := fmt.Sprintf("Generate as many flashcards as possible from the following text. "+
		"Each flashcard must have a clear question and a VERY CONCISE answer (preferably 1-2 sentences maximum). "+
		"Focus on key facts, definitions, processes, or important concepts.\n\n"+
		"IMPORTANT GUIDELINES:\n"+
		"- Keep answers brief and to the point - no longer than 2 sentences when possible\n"+
		"- Make each answer focused on a single concept or fact\n"+
		"- Avoid lengthy explanations or examples\n"+
		"- Questions should be specific and direct\n"+
		"- Answers should be factual and precise\n\n"+
		"PREFERRED FORMAT:\n[\n  {\n    \"question\": \"What is X?\",\n    \"answer\": \"X is Y. It has properties Z.\"\n  },\n  ...\n]\n\n"+
		"Note title: %s\n%s\n\nContent:\n%s", title, tagsInfo, truncate(content, 5000))

	response, err := s.provider.Generate(ctx, prompt, llm.WithMaxTokens(2000), llm.WithTemperature(0.3))
	if err != nil {
		s.log.Error("ai_service", "flashcard generation failed", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.E(apperrors.ErrAIService, "failed to generate flashcards with %s. Please try again later", s.provider.Model())
	}

	cards := flashcards.Parse(response, title)
	for i, card := range cards {
		cards[i] = flashcards.Normalize(card)
	}

	s.flashcardCache.Set(cacheKey, cards, gocache.DefaultExpiration)
	return cards, nil
}

func (s *aiService) Invalidate(contentHash string) {
	s.flashcardCache.Delete(contentHash)
}

func (s *aiService) ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func (s *aiService) Info(ctx context.Context) *dto.AiInfoResponse {
	return &dto.AiInfoResponse{
		Provider:  s.provider.Name(),
		Model:     s.provider.Model(),
		Available: s.available(ctx),
		Features:  []string{"Summary generation", "Flashcard creation", "Auto-tagging"},
	}
}

// available caches the reachability probe so repeated generations don't
// hit the provider's model listing every time.
func (s *aiService) available(ctx context.Context) bool {
	if cached, found := s.availabilityCache.Get(availabilityCacheKey); found {
		return cached.(bool)
	}
	ok := s.provider.Available(ctx)
	s.availabilityCache.Set(availabilityCacheKey, ok, 5*time.Minute)
	return ok
}

func cleanSummary(summary string) string {
	for _, leadIn := range summaryLeadIns {
		summary = strings.TrimSpace(leadIn.ReplaceAllString(summary, ""))
	}
	if summary != "" {
		runes := []rune(summary)
		runes[0] = unicode.ToUpper(runes[0])
		summary = string(runes)
	}
	return summary
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
