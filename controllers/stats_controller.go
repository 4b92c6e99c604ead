package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arylite/nephtys/models"
	"github.com/Arylite/nephtys/repository"
	"github.com/Arylite/nephtys/utils"
)

// StatsController provides catalog statistics for the dashboard.
type StatsController struct {
	store repository.WebtoonStore
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(store repository.WebtoonStore) *StatsController {
	return &StatsController{store: store}
}

type statsResponse struct {
	Total    int64                   `json:"total"`
	ByStatus map[models.Status]int64 `json:"byStatus"`
}

// GetStats returns the total number of webtoons and the count per status.
func (s *StatsController) GetStats(ctx *gin.Context) {
	byStatus, err := s.store.CountByStatus(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, fmt.Errorf("%w: %w", utils.ErrPersistence, err), 50060, "Failed to load stats")
		return
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}
	ctx.JSON(http.StatusOK, statsResponse{Total: total, ByStatus: byStatus})
}
