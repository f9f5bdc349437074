package handlers

import (
	"net/http"
	"time"

	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/stream"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const heartbeatInterval = 30 * time.Second

type StreamHandler struct {
	hub *stream.Hub
}

func NewStreamHandler(hub *stream.Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// Stream godoc
// @Summary      Subscribe to the server-sent event stream of entity changes
// @Description  Push-only channel. Named events: TaskCreated, TaskUpdated, TaskDeleted, TaskCompletionChanged, NoteAdded, NoteUpdated, NoteDeleted, ActivityUpdate.
// @Tags         stream
// @Produce      text/event-stream
// @Success      200
// @Router       /stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.String(http.StatusInternalServerError, "stream unsupported")
		return
	}

	id, frames := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	if _, err := c.Writer.Write([]byte(": connected\n\n")); err != nil {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case frame, open := <-frames:
			if !open {
				return
			}
			if _, err := c.Writer.Write(frame); err != nil {
				log.Debugf("stream: write to %s: %v", id, err)
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			// Comment line keeps idle connections from being reaped by
			// proxies; clients ignore it.
			if _, err := c.Writer.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
