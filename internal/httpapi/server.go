package httpapi

import (
	"errors"
	"net/http"
	"time"

	"vocidrill/internal/domain"
	"vocidrill/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler exposes the quiz operations over HTTP
type Handler struct {
	quizService *service.QuizService
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(quizService *service.QuizService, logger *zap.Logger) *Handler {
	return &Handler{
		quizService: quizService,
		logger:      logger,
	}
}

// Router builds the gin engine with all routes registered
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions/:id/word", h.GetNextWord)
	r.POST("/sessions/:id/submit", h.SubmitAnswer)
	r.DELETE("/sessions/:id", h.EndSession)
	r.GET("/stats", h.GetStats)

	return r
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Word1     string `json:"word1"`
}

type submitRequest struct {
	Word1 string `json:"word1" binding:"required"`
	Word2 string `json:"word2"`
}

type submitResponse struct {
	domain.Verdict
	Word1     string `json:"word1"`
	NextWord1 string `json:"next_word1"`
}

type statsResponse struct {
	Pairs []domain.PairStats `json:"pairs"`
}

// CreateSession starts a new session and returns its first prompt
func (h *Handler) CreateSession(c *gin.Context) {
	id := uuid.NewString()

	pair, err := h.quizService.StartSession(id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{SessionID: id, Word1: pair.Word1})
}

// GetNextWord returns the current prompt of a session
func (h *Handler) GetNextWord(c *gin.Context) {
	id := c.Param("id")
	if !h.quizService.HasSession(id) {
		h.fail(c, domain.ErrSessionNotFound)
		return
	}

	word1, err := h.quizService.GetNextWord(id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{SessionID: id, Word1: word1})
}

// SubmitAnswer judges an answer; an empty word2 is a valid, incorrect answer
func (h *Handler) SubmitAnswer(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.quizService.SubmitAnswer(c.Param("id"), req.Word1, req.Word2)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, submitResponse{
		Verdict:   result.Verdict,
		Word1:     result.Word1,
		NextWord1: result.Next.Word1,
	})
}

// EndSession tears a session down
func (h *Handler) EndSession(c *gin.Context) {
	h.quizService.EndSession(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// GetStats returns per-pair statistics in vocabulary order
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, statsResponse{Pairs: h.quizService.GetStats()})
}

// fail maps quiz errors to HTTP statuses
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStalePrompt), errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// requestLogger logs each request with zap
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
