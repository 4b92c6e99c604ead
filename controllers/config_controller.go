package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arylite/nephtys/config"
)

// ConfigController serves environment driven configuration the browser needs.
type ConfigController struct {
	cfg config.AppConfig
}

func NewConfigController(cfg config.AppConfig) *ConfigController { return &ConfigController{cfg: cfg} }

// GetSearchConfig returns the public (search-only) credentials of the hosted index.
// The admin key never leaves the server.
func (c *ConfigController) GetSearchConfig(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"appId":     c.cfg.SearchAppID,
		"searchKey": c.cfg.SearchPublicKey,
		"indexName": c.cfg.SearchIndexName,
	})
}
