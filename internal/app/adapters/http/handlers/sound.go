package handlers

import (
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"io"
	"net/http"
	"notifwhitelist/internal/app/adapters/plugin"
)

var ErrEmptySound = errors.New("empty sound")

// PutSound stores the raw request body as the custom notification sound.
func (h *Handlers) PutSound(c *gin.Context) {
	audio, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxSound+1))
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if len(audio) == 0 {
		abort(c, http.StatusBadRequest, ErrEmptySound)
		return
	}
	if int64(len(audio)) > h.maxSound {
		abort(c, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: limit is %d bytes", plugin.ErrSoundTooLarge, h.maxSound))
		return
	}

	if err := h.plugin.SetSound(audio); err != nil {
		if errors.Is(err, plugin.ErrSoundTooLarge) {
			abort(c, http.StatusRequestEntityTooLarge, err)
			return
		}
		h.log.Error("Failed to store custom sound", err, "bytes", len(audio))
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"soundBytes": len(audio)})
}

func (h *Handlers) DeleteSound(c *gin.Context) {
	if err := h.plugin.ClearSound(); err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}
