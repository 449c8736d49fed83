package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const mainMenuText = "🏠 Main menu\n\nChoose an action:"

// handleStart handles /start command and the back button
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User opened main menu",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)

	return h.editOrSend(c, mainMenuText, mainMenuMarkup())
}
