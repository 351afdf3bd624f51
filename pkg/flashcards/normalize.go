package flashcards

import "strings"

const maxAnswerLength = 150

// Normalize strips stray "Question:"/"Answer:" prefixes the model left
// inside the card text and shortens rambling answers.
func Normalize(card Card) Card {
	question := card.Question
	if _, after, found := strings.Cut(question, "Question:"); found {
		question = strings.TrimSpace(after)
	}

	answer := card.Answer
	if _, after, found := strings.Cut(answer, "Answer:"); found {
		answer = strings.TrimSpace(after)
	}
	answer = truncateAnswer(answer)

	return Card{Question: question, Answer: answer}
}

// truncateAnswer caps answers at maxAnswerLength, preferring to cut at
// a sentence break past the hundredth character.
func truncateAnswer(answer string) string {
	if len(answer) <= maxAnswerLength {
		return answer
	}
	if idx := strings.Index(answer[100:], ". "); idx >= 0 && 100+idx < maxAnswerLength {
		return answer[:100+idx+1]
	}
	return answer[:maxAnswerLength] + "..."
}
