// Package flashcards turns free-form model output into question/answer
// cards. Models rarely stick to the requested JSON array, so parsing is
// a best-effort cascade over the formats seen in practice, ending in a
// single generic card when nothing matches.
package flashcards

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var (
	jsonArrayPattern     = regexp.MustCompile(`\[[\s\S]*?\]`)
	genericQuestion      = regexp.MustCompile(`(?i)^flashcard\s+\d+\??$`)
	sectionHeaderPattern = regexp.MustCompile(`\*\*Section[^*]*\*\*`)
	numberedJSONPattern  = regexp.MustCompile(`\d+\.\s*(\{[\s\S]*?\})`)
	boldItemPattern      = regexp.MustCompile(`\d+\.\s+\*\*`)
	boldQuestionPattern  = regexp.MustCompile(`^(.*?)\*\*`)
	bulletAnswerPattern  = regexp.MustCompile(`(?s)[*•]\s*(.*)`)
	numberedItemPattern  = regexp.MustCompile(`\d+[.)]\s+`)
	inlineQAPattern      = regexp.MustCompile(`(?m)^([^.!?\n]{2,}\?)[ \t]*([^?\n]+)$`)
	questionLabel        = regexp.MustCompile(`(?i)(?:Question|Q):`)
	answerLabel          = regexp.MustCompile(`(?i)(?:Answer|A):`)
)

// Parse extracts cards from raw model output. The cascade tries the
// structured formats first and degrades towards plain-text heuristics;
// it never returns an empty slice.
func Parse(text, noteTitle string) []Card {
	extractors := []func(string) []Card{
		parseJSONArrays,
		parseSectionedJSON,
		parseNumberedBold,
		parseNumberedPairs,
		parseInlineQA,
		parseLabeledQA,
		parseNumberedObjects,
	}

	for _, extract := range extractors {
		if cards := extract(text); len(cards) > 0 {
			return cards
		}
	}

	title := noteTitle
	if title == "" {
		title = "this note"
	}
	return []Card{{
		Question: fmt.Sprintf("What is the main topic of %q?", title),
		Answer:   "Review the note content for the main topic.",
	}}
}

// parseJSONArrays handles the requested format: a JSON array of
// {question, answer} objects, possibly surrounded by prose.
func parseJSONArrays(text string) []Card {
	for _, candidate := range jsonArrayPattern.FindAllString(text, -1) {
		var cards []Card
		if err := json.Unmarshal([]byte(candidate), &cards); err != nil {
			continue
		}
		if len(cards) == 0 {
			continue
		}

		complete := true
		for _, c := range cards {
			if c.Question == "" || c.Answer == "" {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}

		valid := make([]Card, 0, len(cards))
		for _, c := range cards {
			if genericQuestion.MatchString(c.Question) || len(c.Question) <= 5 {
				continue
			}
			valid = append(valid, c)
		}
		if len(valid) > 0 {
			return valid
		}
	}
	return nil
}

// parseSectionedJSON handles "**Section N**" blocks with numbered JSON
// objects inside each section.
func parseSectionedJSON(text string) []Card {
	if !strings.Contains(text, "**Section") || !strings.Contains(text, "{") {
		return nil
	}
	var cards []Card
	for _, section := range splitAt(text, sectionHeaderPattern) {
		cards = append(cards, parseJSONObjects(section)...)
	}
	return cards
}

// parseNumberedObjects handles "1. { "question": ... }" lists without
// section headers.
func parseNumberedObjects(text string) []Card {
	if !strings.Contains(text, "{") {
		return nil
	}
	return parseJSONObjects(text)
}

func parseJSONObjects(text string) []Card {
	var cards []Card
	for _, m := range numberedJSONPattern.FindAllStringSubmatch(text, -1) {
		var card Card
		if err := json.Unmarshal([]byte(m[1]), &card); err != nil {
			continue
		}
		if card.Question != "" && card.Answer != "" {
			cards = append(cards, card)
		}
	}
	return cards
}

// parseNumberedBold handles "1. **What is X?** * answer" items.
func parseNumberedBold(text string) []Card {
	var cards []Card
	for _, item := range splitAt(text, boldItemPattern) {
		// item starts right after "N. **"
		item = boldItemPattern.ReplaceAllString(item, "")
		qm := boldQuestionPattern.FindStringSubmatch(item)
		if qm == nil {
			continue
		}
		rest := item[len(qm[0]):]
		am := bulletAnswerPattern.FindStringSubmatch(rest)
		if am == nil {
			continue
		}

		question := strings.TrimSpace(qm[1])
		answer := strings.TrimSpace(am[1])
		if len(question) > 3 && len(answer) > 3 {
			cards = append(cards, Card{Question: question, Answer: answer})
		}
	}
	return cards
}

// parseNumberedPairs handles plain numbered lists where the first line
// of each item is the question and the rest is the answer.
func parseNumberedPairs(text string) []Card {
	var cards []Card
	for _, item := range splitAt(text, numberedItemPattern) {
		body := numberedItemPattern.ReplaceAllString(item, "")
		question, answer, found := strings.Cut(body, "\n")
		if !found {
			continue
		}

		question = strings.TrimSpace(strings.ReplaceAll(question, "**", ""))
		answer = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(answer), "*-• \t"))

		if len(question) > 3 && strings.Contains(question, "?") && len(answer) > 3 {
			cards = append(cards, Card{Question: question, Answer: answer})
		}
	}
	return cards
}

// parseInlineQA handles "What is X? X is Y." lines.
func parseInlineQA(text string) []Card {
	var cards []Card
	for _, m := range inlineQAPattern.FindAllStringSubmatch(text, -1) {
		question := strings.TrimSpace(m[1])
		answer := strings.TrimSpace(m[2])
		if len(question) > 5 && len(answer) > 3 {
			cards = append(cards, Card{Question: question, Answer: answer})
		}
	}
	return cards
}

// parseLabeledQA handles explicit "Question: ... Answer: ..." blocks.
func parseLabeledQA(text string) []Card {
	var cards []Card
	for _, block := range splitAt(text, questionLabel) {
		block = questionLabel.ReplaceAllString(block, "")
		loc := answerLabel.FindStringIndex(block)
		if loc == nil {
			continue
		}

		question := strings.TrimSpace(block[:loc[0]])
		answer := strings.TrimSpace(block[loc[1]:])
		if len(question) > 3 && len(answer) > 3 {
			cards = append(cards, Card{Question: question, Answer: answer})
		}
	}
	return cards
}

// splitAt cuts text into chunks, each starting at a match of marker.
// Text before the first match is dropped.
func splitAt(text string, marker *regexp.Regexp) []string {
	locs := marker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	chunks := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		chunks = append(chunks, text[loc[0]:end])
	}
	return chunks
}
