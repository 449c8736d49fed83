package handler

import (
	"strconv"

	"vocidrill/internal/middleware"
	"vocidrill/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	quizService *service.QuizService
	logger      *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	quizService *service.QuizService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		quizService: quizService,
		logger:      logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.UpdateLogger(h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/learn", h.handleLearn)
	h.bot.Handle("/stats", h.handleStats)
	h.bot.Handle("/stop", h.handleStop)

	// Text messages are answers
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnLearn, h.handleLearn)
	h.bot.Handle(&btnStats, h.handleStats)
	h.bot.Handle(&btnStop, h.handleStop)
	h.bot.Handle(&btnBack, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// sessionID maps a Telegram user to a quiz session
func sessionID(userID int64) string {
	return "tg:" + strconv.FormatInt(userID, 10)
}

// Inline keyboard buttons
var (
	btnLearn = tele.Btn{
		Unique: "learn",
		Text:   "📝 Learn",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Statistics",
	}
	btnStop = tele.Btn{
		Unique: "stop",
		Text:   "⏹ Stop",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Back",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnLearn),
		menu.Row(btnStats),
	)
	return menu
}

// promptMarkup is attached to every question
func promptMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnStop))
	return markup
}
