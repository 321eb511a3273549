package routes

import (
	"net/http"

	"notable-notes/notable/database"
	"notable-notes/notable/services"

	"github.com/gin-gonic/gin"
)

// RegisterTrashRoutes registers all routes related to trash functionality
func RegisterTrashRoutes(group *gin.RouterGroup, db *database.Database, trashService services.TrashServiceInterface) {
	group.GET("/trashed-notes", func(c *gin.Context) { GetTrashedNotes(c, db, trashService) })
	group.POST("/trashed-notes/restore_all", func(c *gin.Context) { RestoreAllNotes(c, db, trashService) })
	group.POST("/trashed-notes/:id/restore", func(c *gin.Context) { RestoreNote(c, db, trashService) })
	group.DELETE("/trashed-notes/:id", func(c *gin.Context) { HardDeleteNote(c, db, trashService) })
	group.DELETE("/trashed-notes", func(c *gin.Context) { EmptyTrash(c, db, trashService) })
}

func GetTrashedNotes(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	notes, err := trashService.GetTrashedNotes(db, r)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func RestoreNote(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	if err := trashService.RestoreNote(db, r, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note restored successfully"})
}

func RestoreAllNotes(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	restored, err := trashService.RestoreAll(db, r)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": restored})
}

func HardDeleteNote(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	if err := trashService.HardDeleteNote(db, r, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note permanently deleted"})
}

func EmptyTrash(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	deleted, err := trashService.EmptyTrash(db, r)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
