package handler

import (
	"errors"
	"fmt"
	"strings"

	"vocidrill/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleLearn shows the current prompt, starting a session when needed
func (h *Handler) handleLearn(c tele.Context) error {
	userID := c.Sender().ID

	word1, err := h.quizService.GetNextWord(sessionID(userID))
	if err != nil {
		h.logger.Error("Failed to get next word", zap.Error(err), zap.Int64("user_id", userID))
		return h.editOrSend(c, errorMessage(err), mainMenuMarkup())
	}

	return h.editOrSend(c, formatPrompt(word1), promptMarkup())
}

// handleText treats every text message of a learning user as an answer
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	id := sessionID(userID)

	// unregistered commands also arrive as text
	if isCommand(c.Text()) {
		return c.Send("Unknown command. Use /learn, /stats or /stop.")
	}

	if !h.quizService.HasSession(id) {
		return c.Send("Press 📝 Learn to get a word.", mainMenuMarkup())
	}

	word1, err := h.quizService.GetNextWord(id)
	if err != nil {
		h.logger.Error("Failed to get current prompt", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorMessage(err), mainMenuMarkup())
	}

	result, err := h.quizService.SubmitAnswer(id, word1, c.Text())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// the session has already moved on to a fresh pair
			next, nextErr := h.quizService.GetNextWord(id)
			if nextErr == nil {
				return c.Send(errorMessage(err)+"\n\n"+formatPrompt(next), promptMarkup())
			}
		}
		return c.Send(errorMessage(err))
	}

	return c.Send(
		formatVerdict(result.Word1, result.Verdict)+"\n\n"+formatPrompt(result.Next.Word1),
		promptMarkup(),
	)
}

// handleStop ends the learning session
func (h *Handler) handleStop(c tele.Context) error {
	h.quizService.EndSession(sessionID(c.Sender().ID))
	return h.editOrSend(c, mainMenuText, mainMenuMarkup())
}

func isCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

func formatPrompt(word1 string) string {
	return fmt.Sprintf("Translate \"%s\":", word1)
}

func formatVerdict(word1 string, verdict domain.Verdict) string {
	if verdict.Correct {
		return "✅ Correct!"
	}
	return fmt.Sprintf("❌ Incorrect, the translation of \"%s\" is \"%s\"", word1, verdict.CanonicalWord2)
}

// errorMessage converts quiz errors into something a learner can act on
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return "⏳ Still checking your previous answer."
	case errors.Is(err, domain.ErrStalePrompt):
		return "That answer was for an old word."
	case errors.Is(err, domain.ErrNotFound):
		return "That word is no longer in the vocabulary."
	case errors.Is(err, domain.ErrEmptyStore):
		return "The vocabulary is empty."
	case errors.Is(err, domain.ErrSessionNotFound):
		return "Your session has ended. Press 📝 Learn to start again."
	default:
		return "Something went wrong. Please try again later."
	}
}
