package handler

import (
	"errors"
	"net/http"
	"strconv"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// CoverHandler streams the novel's cover image.
func CoverHandler(c *gin.Context, novelsService *usecase.NovelsService) {
	novelName := c.Param("novelName")

	utils.TrackCatalogOperation("cover")

	content, err := novelsService.Cover(novelName)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Cover image for "+novelName+" not found")
			return
		}
		utils.TrackError("catalog", "cover_failed")
		utils.InternalError(c, "Failed to send cover")
		return
	}

	c.Data(http.StatusOK, "image/png", content)
}

// ChapterListHandler returns chapter names in ascending numeric order.
func ChapterListHandler(c *gin.Context, novelsService *usecase.NovelsService) {
	novelName := c.Param("novelName")

	utils.TrackCatalogOperation("chapters")

	chapters, err := novelsService.ChapterList(novelName)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Chapters not found")
			return
		}
		utils.TrackError("catalog", "chapter_list_failed")
		utils.InternalError(c, "Error reading chapter list")
		return
	}

	c.JSON(http.StatusOK, dto.ChapterListResponse{Chapters: chapters})
}

// ChapterHandler returns the markdown text of one chapter. A non-numeric
// chapter segment can never name a chapter file, so it is a 404.
func ChapterHandler(c *gin.Context, novelsService *usecase.NovelsService) {
	novelName := c.Param("novelName")

	chapterNumber, err := strconv.Atoi(c.Param("chapterNumber"))
	if err != nil {
		utils.NotFound(c, "Chapter not found")
		return
	}

	utils.TrackCatalogOperation("chapter")

	content, err := novelsService.ChapterContent(c.Request.Context(), novelName, chapterNumber)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Chapter not found")
			return
		}
		utils.TrackError("catalog", "chapter_failed")
		utils.InternalError(c, "Error reading chapter")
		return
	}

	c.JSON(http.StatusOK, dto.ChapterContentResponse{Content: content})
}
