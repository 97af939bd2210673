package handler

import (
	"errors"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// SearchNovelsHandler serves both the plain listing and the filtered query
// endpoint; the listing is just a search with default options.
func SearchNovelsHandler(c *gin.Context, novelsService *usecase.NovelsService) {
	opts := usecase.ParseSearchOptions(c.Request.URL.Query())
	opts.ExcludeCombinator = utils.GetEnvAsString("TAGS_EXCLUDE_COMBINATOR", usecase.ExcludeCombinatorOr)

	utils.TrackCatalogOperation("search")

	response, err := novelsService.Search(c.Request.Context(), opts)
	if err != nil {
		utils.TrackError("catalog", "search_failed")
		utils.InternalError(c, "Failed to search novels")
		return
	}

	utils.Success(c, response)
}

// GetNovelHandler returns the best title match for :novelName. No match is
// an empty array, not an error.
func GetNovelHandler(c *gin.Context, novelsService *usecase.NovelsService) {
	novelName := c.Param("novelName")

	utils.TrackCatalogOperation("lookup")

	novel, err := novelsService.FindByName(c.Request.Context(), novelName)
	if err != nil {
		utils.TrackError("catalog", "lookup_failed")
		utils.InternalError(c, "Failed to retrieve novel")
		return
	}

	if novel == nil {
		utils.Success(c, []interface{}{})
		return
	}
	utils.Success(c, novel)
}

// RandomNovelHandler returns one uniformly sampled novel.
func RandomNovelHandler(c *gin.Context, novelsService *usecase.NovelsService) {
	utils.TrackCatalogOperation("random")

	novel, err := novelsService.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrNoNovels) {
			utils.NotFound(c, "No novels found")
			return
		}
		utils.TrackError("catalog", "random_failed")
		utils.InternalError(c, "Failed to retrieve novel")
		return
	}

	utils.Success(c, novel)
}
