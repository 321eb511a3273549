package routes

import (
	"net/http"

	"notable-notes/notable/services"

	"github.com/gin-gonic/gin"
)

type generateTagsRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func RegisterAIRoutes(group *gin.RouterGroup, aiService services.AIServiceInterface) {
	group.POST("/generate-tags", func(c *gin.Context) { GenerateTags(c, aiService) })
}

func GenerateTags(c *gin.Context, aiService services.AIServiceInterface) {
	if _, ok := requester(c); !ok {
		return
	}

	var request generateTagsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tags, err := aiService.GenerateTags(c.Request.Context(), request.Title, request.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
