package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arylite/nephtys/repository"
	"github.com/Arylite/nephtys/utils"
)

// AnalyticsController exposes view analytics for catalog entries.
type AnalyticsController struct {
	store repository.WebtoonStore
	views ViewCounter
}

func NewAnalyticsController(store repository.WebtoonStore, views ViewCounter) *AnalyticsController {
	return &AnalyticsController{store: store, views: views}
}

// GetViews returns the view count of a webtoon.
func (a *AnalyticsController) GetViews(ctx *gin.Context) {
	id := ctx.Param("id")
	if !a.exists(ctx, id) {
		return
	}
	stats, err := a.views.Get(ctx.Request.Context(), id)
	if err != nil {
		utils.Fail(ctx, fmt.Errorf("get views: %w", err), 50040, "Failed to get webtoon analytics")
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// AddView records one view and returns the updated count.
func (a *AnalyticsController) AddView(ctx *gin.Context) {
	id := ctx.Param("id")
	if !a.exists(ctx, id) {
		return
	}
	stats, err := a.views.Add(ctx.Request.Context(), id)
	if err != nil {
		utils.Fail(ctx, fmt.Errorf("add view: %w", err), 50041, "Failed to update webtoon views")
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// exists writes the error response itself and returns false when id is unknown.
func (a *AnalyticsController) exists(ctx *gin.Context, id string) bool {
	if _, err := a.store.FindByID(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Fail(ctx, fmt.Errorf("%w: %w", utils.ErrNotFound, err), 40440, "Webtoon not found")
			return false
		}
		utils.Fail(ctx, fmt.Errorf("%w: %w", utils.ErrPersistence, err), 50042, "Failed to fetch webtoon")
		return false
	}
	return true
}
