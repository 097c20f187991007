// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/askjersey/faqbot/internal/domain/usecases"
)

// AnswerService is what the query route needs from the domain layer.
// Satisfied by usecases.AnswerUseCase; nil means degraded startup.
type AnswerService interface {
	AnswerQuestion(ctx context.Context, question string) (string, error)
}

// Server is the HTTP server for the FAQ query API.
type Server struct {
	answer AnswerService
	addr   string
	logger *zap.Logger
}

// NewServer creates a new HTTP server. Passing a nil AnswerService starts
// the server in degraded mode: /ping stays alive, /api/query returns 503.
func NewServer(answer AnswerService, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		answer: answer,
		addr:   addr,
		logger: logger,
	}
}

// queryRequest is the /api/query request body.
type queryRequest struct {
	Question string `json:"question"`
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())

	router.GET("/", s.handleIndex)
	router.GET("/ping", s.handlePing)
	router.POST("/api/query", s.handleQuery)
	return router
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	s.logger.Info("faqbot server starting", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleQuery runs the retrieval-and-grounding pipeline for one question.
func (s *Server) handleQuery(c *gin.Context) {
	if s.answer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": usecases.ErrServiceUnavailable.Error()})
		return
	}

	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": usecases.ErrMissingQuestion.Error()})
		return
	}

	answer, err := s.answer.AnswerQuestion(c.Request.Context(), req.Question)
	if err != nil {
		status := statusFor(err)
		s.logger.Error("query failed",
			zap.Int("status", status),
			zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// statusFor maps pipeline error categories to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecases.ErrMissingQuestion):
		return http.StatusBadRequest
	case errors.Is(err, usecases.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, usecases.ErrEmbeddingFailed),
		errors.Is(err, usecases.ErrRetrievalFailed),
		errors.Is(err, usecases.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handlePing is the liveness route.
func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive", "message": "pong"})
}

// handleIndex serves the ask page.
func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

// requestLogger logs one line per request with a correlation id.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		c.Next()

		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Ask Jersey</title>
    <style>
        body { font-family: sans-serif; max-width: 640px; margin: 40px auto; padding: 0 16px; }
        #answer { white-space: pre-wrap; margin-top: 16px; }
        input { width: 75%; padding: 8px; }
        button { padding: 8px 16px; }
        .error { color: #b00020; }
    </style>
</head>
<body>
    <h1>Ask Jersey</h1>
    <p>Ask a question about living in Jersey.</p>
    <form onsubmit="ask(event)">
        <input type="text" id="question" placeholder="e.g. What are the income tax rates?" required>
        <button type="submit">Ask</button>
    </form>
    <div id="answer"></div>
    <script>
        async function ask(e) {
            e.preventDefault();
            const out = document.getElementById('answer');
            out.textContent = 'Thinking...';
            try {
                const resp = await fetch('/api/query', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify({question: document.getElementById('question').value})
                });
                const data = await resp.json();
                if (resp.ok) {
                    out.textContent = data.answer;
                } else {
                    out.innerHTML = '<span class="error">' + (data.error || 'request failed') + '</span>';
                }
            } catch (err) {
                out.innerHTML = '<span class="error">connection error</span>';
            }
        }
    </script>
</body>
</html>`
