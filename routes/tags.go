package routes

import (
	"net/http"

	"notable-notes/notable/database"
	"notable-notes/notable/services"

	"github.com/gin-gonic/gin"
)

func RegisterTagRoutes(group *gin.RouterGroup, db *database.Database, tagService services.TagServiceInterface) {
	group.GET("/tags", func(c *gin.Context) { GetTagCloud(c, db, tagService) })
	group.GET("/trending-tags", func(c *gin.Context) { GetTrendingTags(c, db, tagService) })
}

func GetTagCloud(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	counts, err := tagService.GetTagCloud(db, r)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func GetTrendingTags(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	r, ok := requester(c)
	if !ok {
		return
	}

	counts, err := tagService.GetTrendingTags(db, r)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
