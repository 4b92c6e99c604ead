package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Arylite/nephtys/config"
	"github.com/Arylite/nephtys/controllers"
	"github.com/Arylite/nephtys/controllers/mocks"
	"github.com/Arylite/nephtys/models"
	"github.com/Arylite/nephtys/repository"
	repomocks "github.com/Arylite/nephtys/repository/mocks"
	storagemocks "github.com/Arylite/nephtys/storage/mocks"
	"github.com/Arylite/nephtys/utils"
)

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestSearchReturnsNormalizedHits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockSearcher(ctrl)
	searcher.EXPECT().Query(gomock.Any(), "tower").Return([]models.Webtoon{{ID: "w1", Title: "Tower"}}, nil)

	r := gin.New()
	r.GET("/api/search", controllers.NewSearchController(searcher, nil, time.Hour, nil).Search)

	w := serve(r, http.MethodGet, "/api/search?q=tower")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"w1"`)
}

func TestSearchSignsCoverKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockSearcher(ctrl)
	objects := storagemocks.NewMockObjectStore(ctrl)
	key := "webtoon-covers/1700000000000-tower.jpg"
	empty := ""
	searcher.EXPECT().Query(gomock.Any(), "tower").Return([]models.Webtoon{
		{ID: "w1", Title: "Tower", CoverImage: &key},
		{ID: "w2", Title: "Tower II", CoverImage: &empty},
	}, nil)
	objects.EXPECT().SignedGetURL(gomock.Any(), key, time.Hour).
		DoAndReturn(func(_ context.Context, k string, _ time.Duration) (string, error) {
			return "https://signed.example/" + k + "?X-Amz-Expires=3600", nil
		})

	r := gin.New()
	r.GET("/api/search", controllers.NewSearchController(searcher, objects, time.Hour, nil).Search)

	w := serve(r, http.MethodGet, "/api/search?q=tower")
	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Webtoon
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.NotNil(t, got[0].CoverImage)
	assert.NotEqual(t, key, *got[0].CoverImage)
	assert.Equal(t, "https://signed.example/"+key+"?X-Amz-Expires=3600", *got[0].CoverImage)
	require.NotNil(t, got[1].CoverImage)
	assert.Empty(t, *got[1].CoverImage)
}

func TestSearchSigningFailureFallsBackToEmptyList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockSearcher(ctrl)
	objects := storagemocks.NewMockObjectStore(ctrl)
	key := "webtoon-covers/1-a.jpg"
	searcher.EXPECT().Query(gomock.Any(), "a").Return([]models.Webtoon{{ID: "w1", CoverImage: &key}}, nil)
	objects.EXPECT().SignedGetURL(gomock.Any(), key, time.Hour).Return("", errors.New("no credentials"))

	r := gin.New()
	r.GET("/api/search", controllers.NewSearchController(searcher, objects, time.Hour, nil).Search)

	w := serve(r, http.MethodGet, "/api/search?q=a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSearchFailureFallsBackToEmptyList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockSearcher(ctrl)
	searcher.EXPECT().Query(gomock.Any(), "x").Return(nil, utils.ErrUpstreamSearch)

	r := gin.New()
	r.GET("/api/search", controllers.NewSearchController(searcher, nil, time.Hour, nil).Search)

	w := serve(r, http.MethodGet, "/api/search?q=x")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestReindex(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockSearcher(ctrl)
	r := gin.New()
	r.POST("/reindex", controllers.NewSearchController(searcher, nil, time.Hour, nil).Reindex)

	searcher.EXPECT().ReindexAll(gomock.Any()).Return(7, nil)
	w := serve(r, http.MethodPost, "/reindex")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"indexed":7}`, w.Body.String())

	searcher.EXPECT().ReindexAll(gomock.Any()).Return(0, utils.ErrUpstreamSearch)
	w = serve(r, http.MethodPost, "/reindex")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestViews(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	store := repomocks.NewMockWebtoonStore(ctrl)
	views := mocks.NewMockViewCounter(ctrl)
	c := controllers.NewAnalyticsController(store, views)
	r := gin.New()
	r.GET("/api/webtoon/:id/views", c.GetViews)
	r.POST("/api/webtoon/:id/views", c.AddView)

	store.EXPECT().FindByID(gomock.Any(), "missing").Return(nil, repository.ErrNotFound).Times(2)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/webtoon/missing/views").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodPost, "/api/webtoon/missing/views").Code)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.EXPECT().FindByID(gomock.Any(), "w1").Return(&models.Webtoon{ID: "w1"}, nil).Times(2)
	views.EXPECT().Add(gomock.Any(), "w1").Return(&utils.WebtoonViews{WebtoonID: "w1", Views: 3, LastUpdate: &now}, nil)
	views.EXPECT().Get(gomock.Any(), "w1").Return(&utils.WebtoonViews{WebtoonID: "w1", Views: 3, LastUpdate: &now}, nil)

	w := serve(r, http.MethodPost, "/api/webtoon/w1/views")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"webtoonId":"w1","views":3,"lastUpdate":"2026-01-01T00:00:00Z"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/api/webtoon/w1/views")
	assert.Equal(t, http.StatusOK, w.Code)

	store.EXPECT().FindByID(gomock.Any(), "w2").Return(&models.Webtoon{ID: "w2"}, nil)
	views.EXPECT().Get(gomock.Any(), "w2").Return(nil, errors.New("redis down"))
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/api/webtoon/w2/views").Code)
}

func TestStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	store := repomocks.NewMockWebtoonStore(ctrl)
	r := gin.New()
	r.GET("/api/stats", controllers.NewStatsController(store).GetStats)

	store.EXPECT().CountByStatus(gomock.Any()).Return(map[models.Status]int64{
		models.StatusOngoing: 2, models.StatusCompleted: 1, models.StatusHiatus: 0, models.StatusDropped: 0,
	}, nil)
	w := serve(r, http.MethodGet, "/api/stats")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":3,"byStatus":{"ONGOING":2,"COMPLETED":1,"HIATUS":0,"DROPPED":0}}`, w.Body.String())

	store.EXPECT().CountByStatus(gomock.Any()).Return(nil, errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/api/stats").Code)
}

func TestSearchConfigHidesAdminKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.AppConfig{SearchAppID: "APP", SearchAPIKey: "admin-secret", SearchPublicKey: "public", SearchIndexName: "webtoons_index"}
	r := gin.New()
	r.GET("/api/config/search", controllers.NewConfigController(cfg).GetSearchConfig)

	w := serve(r, http.MethodGet, "/api/config/search")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"appId":"APP","searchKey":"public","indexName":"webtoons_index"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "admin-secret")
}
