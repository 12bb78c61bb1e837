package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"notifwhitelist/internal/app/domain/changelog"
	"notifwhitelist/internal/app/domain/preferences"
	"notifwhitelist/internal/app/ports"
	"notifwhitelist/pkg/logger"
	"time"
)

var ErrConfirmationRequired = errors.New("confirmation required: pass confirm=true")

// Plugin is the part of the plugin the settings panel drives.
type Plugin interface {
	Settings() *preferences.Record
	SetOptions(values map[preferences.Option]bool) error

	Add(list preferences.List, id string) (bool, error)
	Remove(list preferences.List, id string) (bool, error)
	Toggle(list preferences.List, id string) (bool, error)
	ClearWhitelists() error
	ClearBlacklists() error

	SetSound(audio []byte) error
	ClearSound() error

	Changelog() *changelog.Changelog
}

type Handlers struct {
	log      logger.Logger
	plugin   Plugin
	host     ports.HostStatusPort
	maxSound int64
	started  time.Time
}

func New(log logger.Logger, plugin Plugin, host ports.HostStatusPort, maxSound int64) *Handlers {
	return &Handlers{
		log:      log,
		plugin:   plugin,
		host:     host,
		maxSound: maxSound,
		started:  time.Now(),
	}
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
