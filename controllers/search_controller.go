package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arylite/nephtys/models"
	"github.com/Arylite/nephtys/storage"
	"github.com/Arylite/nephtys/utils"
)

// SearchController serves the public search box and the admin reindex action.
type SearchController struct {
	searcher     Searcher
	objects      storage.ObjectStore
	signedURLTTL time.Duration
	logger       *zap.Logger
}

func NewSearchController(searcher Searcher, objects storage.ObjectStore, signedURLTTL time.Duration, logger *zap.Logger) *SearchController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchController{searcher: searcher, objects: objects, signedURLTTL: signedURLTTL, logger: logger}
}

// Search answers ?q= with normalized hits whose cover keys are signed like the list endpoint.
// Failures degrade to an empty list.
func (s *SearchController) Search(ctx *gin.Context) {
	hits, err := s.searcher.Query(ctx.Request.Context(), ctx.Query("q"))
	if err == nil {
		err = signCovers(ctx.Request.Context(), s.objects, s.signedURLTTL, hits)
	}
	if err != nil {
		s.logger.Warn("search failed, returning no hits", zap.String("q", ctx.Query("q")), zap.Error(err))
		hits = nil
	}
	if hits == nil {
		hits = []models.Webtoon{}
	}
	ctx.JSON(http.StatusOK, hits)
}

// Reindex pushes every stored webtoon to the index.
func (s *SearchController) Reindex(ctx *gin.Context) {
	n, err := s.searcher.ReindexAll(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, err, 50350, "Failed to synchronize records")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"indexed": n})
}
