package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
	"notifwhitelist/internal/app/domain/lists"
	"notifwhitelist/internal/app/domain/preferences"
)

type ListEntryResponse struct {
	List    preferences.List `json:"list"`
	ID      string           `json:"id"`
	Listed  bool             `json:"listed"`
	Changed bool             `json:"changed"`
}

func (h *Handlers) AddListEntry(c *gin.Context) {
	list, id := preferences.List(c.Param("list")), c.Param("id")

	changed, err := h.plugin.Add(list, id)
	if !h.listError(c, err) {
		c.JSON(http.StatusOK, ListEntryResponse{List: list, ID: id, Listed: true, Changed: changed})
	}
}

func (h *Handlers) RemoveListEntry(c *gin.Context) {
	list, id := preferences.List(c.Param("list")), c.Param("id")

	changed, err := h.plugin.Remove(list, id)
	if !h.listError(c, err) {
		c.JSON(http.StatusOK, ListEntryResponse{List: list, ID: id, Listed: false, Changed: changed})
	}
}

func (h *Handlers) ToggleListEntry(c *gin.Context) {
	list, id := preferences.List(c.Param("list")), c.Param("id")

	listed, err := h.plugin.Toggle(list, id)
	if !h.listError(c, err) {
		c.JSON(http.StatusOK, ListEntryResponse{List: list, ID: id, Listed: listed, Changed: true})
	}
}

// listError writes the response for err and reports whether it did.
func (h *Handlers) listError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, lists.ErrUnknownList):
		abort(c, http.StatusNotFound, err)
	case errors.Is(err, lists.ErrEmptyID):
		abort(c, http.StatusBadRequest, err)
	default:
		abort(c, http.StatusInternalServerError, err)
	}
	return true
}
