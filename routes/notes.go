package routes

import (
	"net/http"
	"strings"

	"notable-notes/notable/database"
	"notable-notes/notable/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterNoteRoutes(group *gin.RouterGroup, db *database.Database, noteService services.NoteServiceInterface) {
	// Collection endpoints with query parameters
	group.GET("/notes", func(c *gin.Context) { GetNotes(c, db, noteService) })
	group.POST("/notes", func(c *gin.Context) { CreateNote(c, db, noteService) })

	// The bulk reorder endpoint shares the /notes prefix with the
	// resource endpoints below.
	group.PUT("/notes/update_order", func(c *gin.Context) { UpdateNoteOrder(c, db, noteService) })

	// Resource-specific endpoints
	group.GET("/notes/:id", func(c *gin.Context) { GetNoteById(c, db, noteService) })
	group.PUT("/notes/:id", func(c *gin.Context) { UpdateNote(c, db, noteService) })
	group.DELETE("/notes/:id", func(c *gin.Context) { SoftDeleteNote(c, db, noteService) })
	group.GET("/notes/:id/related", func(c *gin.Context) { GetRelatedNotes(c, db, noteService) })
	group.POST("/notes/:id/toggle_pin", func(c *gin.Context) { TogglePin(c, db, noteService) })
	group.POST("/notes/:id/share", func(c *gin.Context) { ToggleShare(c, db, noteService) })
}

// RegisterPublicNoteRoutes registers the anonymous share-link endpoint.
// It lives outside the authenticated group: a share token is the only
// credential it needs.
func RegisterPublicNoteRoutes(router *gin.Engine, db *database.Database, noteService services.NoteServiceInterface) {
	router.GET("/api/v1/public-notes/:share_token", func(c *gin.Context) { GetSharedNote(c, db, noteService) })
}

func CreateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	var noteData map[string]interface{}
	if err := c.ShouldBindJSON(&noteData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdNote, err := noteService.CreateNote(db, r, noteData)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdNote)
}

func GetNotes(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	params := make(map[string]interface{})
	if search := c.Query("search"); search != "" {
		params["search"] = search
	}
	if tags := c.Query("tags"); tags != "" {
		var names []string
		for _, name := range strings.Split(tags, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		params["tags"] = names
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		params["category_id"] = categoryID
	}
	if visibility := c.Query("visibility"); visibility != "" {
		params["visibility"] = visibility
	}

	notes, err := noteService.GetNotes(db, r, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func GetNoteById(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	note, err := noteService.GetNoteById(db, r, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func UpdateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	var noteData map[string]interface{}
	if err := c.ShouldBindJSON(&noteData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedNote, err := noteService.UpdateNote(db, r, c.Param("id"), noteData)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedNote)
}

func SoftDeleteNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	if err := noteService.SoftDeleteNote(db, r, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func GetRelatedNotes(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	notes, err := noteService.GetRelatedNotes(db, r, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func TogglePin(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	note, err := noteService.TogglePin(db, r, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func ToggleShare(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	note, err := noteService.ToggleShare(db, r, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

type updateOrderRequest struct {
	NoteIDs []uuid.UUID `json:"note_ids" binding:"required"`
}

func UpdateNoteOrder(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	var request updateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := noteService.UpdateOrder(db, r, request.NoteIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func GetSharedNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	note, err := noteService.GetSharedNote(db, c.Param("share_token"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}
