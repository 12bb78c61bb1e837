package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
	"notifwhitelist/internal/app/adapters/plugin"
	"notifwhitelist/internal/app/domain/preferences"
)

// SettingsView is the record as the panel sees it: the sound is reported by size only.
type SettingsView struct {
	Options    map[preferences.Option]bool   `json:"options"`
	Lists      map[preferences.List][]string `json:"lists"`
	SoundBytes int                           `json:"soundBytes"`
}

func view(rec *preferences.Record) SettingsView {
	v := SettingsView{
		Options:    make(map[preferences.Option]bool, len(preferences.AllOptions)),
		Lists:      make(map[preferences.List][]string, len(preferences.AllLists)),
		SoundBytes: len(rec.CustomNotificationSoundBytes),
	}
	for _, o := range preferences.AllOptions {
		v.Options[o] = *rec.Option(o)
	}
	for _, l := range preferences.AllLists {
		v.Lists[l] = *rec.List(l)
	}
	return v
}

func (h *Handlers) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, view(h.plugin.Settings()))
}

// PatchSettings takes {"enableWhitelisting": false, ...}. Every changed toggle is saved at once.
func (h *Handlers) PatchSettings(c *gin.Context) {
	var body map[preferences.Option]bool
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	if err := h.plugin.SetOptions(body); err != nil {
		if errors.Is(err, plugin.ErrUnknownOption) {
			abort(c, http.StatusBadRequest, err)
			return
		}
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, view(h.plugin.Settings()))
}

func (h *Handlers) ClearWhitelists(c *gin.Context) {
	h.clear(c, h.plugin.ClearWhitelists)
}

func (h *Handlers) ClearBlacklists(c *gin.Context) {
	h.clear(c, h.plugin.ClearBlacklists)
}

func (h *Handlers) clear(c *gin.Context, fn func() error) {
	if c.Query("confirm") != "true" {
		abort(c, http.StatusBadRequest, ErrConfirmationRequired)
		return
	}
	if err := fn(); err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, view(h.plugin.Settings()))
}
