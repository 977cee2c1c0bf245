package delivery

import (
	"errors"
	"log"
	"net/http"

	"rcc-backend/internal/syncstore/usecase"
	"rcc-backend/pkg/kv"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncUsecase usecase.SyncUsecase
}

func NewSyncHandler(syncUsecase usecase.SyncUsecase) *SyncHandler {
	return &SyncHandler{
		syncUsecase: syncUsecase,
	}
}

// CORSMiddleware opens the sync endpoints to cross-origin callers; the
// manual-balance bookmarklet posts here from arbitrary banking pages.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.JSON(http.StatusOK, gin.H{})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetValue handles GET /api/sync?key=<allowlisted>.
func (h *SyncHandler) GetValue(c *gin.Context) {
	key := c.Query("key")
	if !usecase.KeyAllowed(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key"})
		return
	}

	if !h.syncUsecase.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "KV not configured"})
		return
	}

	value, err := h.syncUsecase.Read(c.Request.Context(), key)
	if err != nil {
		log.Printf("[ERROR] KV GET %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"value": value})
}

type setValueRequest struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// SetValue handles POST /api/sync with body {key, value}.
func (h *SyncHandler) SetValue(c *gin.Context) {
	var req setValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key"})
		return
	}

	if !usecase.KeyAllowed(req.Key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key"})
		return
	}

	if !h.syncUsecase.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "KV not configured"})
		return
	}

	if err := h.syncUsecase.Write(c.Request.Context(), req.Key, req.Value); err != nil {
		if !errors.Is(err, usecase.ErrWriteFailed) && !errors.Is(err, kv.ErrNotConfigured) {
			log.Printf("[ERROR] KV POST %s: %v", req.Key, err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
