package routes

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Arylite/nephtys/config"
	"github.com/Arylite/nephtys/controllers"
	ctrlmocks "github.com/Arylite/nephtys/controllers/mocks"
	"github.com/Arylite/nephtys/models"
	repomocks "github.com/Arylite/nephtys/repository/mocks"
	storagemocks "github.com/Arylite/nephtys/storage/mocks"
)

func newTestRouter(t *testing.T, secret string) (http.Handler, *repomocks.MockWebtoonStore, *ctrlmocks.MockSearcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := repomocks.NewMockWebtoonStore(ctrl)
	objects := storagemocks.NewMockObjectStore(ctrl)
	searcher := ctrlmocks.NewMockSearcher(ctrl)
	views := ctrlmocks.NewMockViewCounter(ctrl)

	cfg := config.AppConfig{
		GinMode:            "test",
		GinPath:            filepath.Join(t.TempDir(), "gin.log"),
		LogLevel:           "info",
		AllowedOrigins:     []string{"https://nephtys.example"},
		RateLimitPerMinute: 60,
		AuthJWTSecret:      secret,
	}
	r := SetupRouter(cfg, Dependencies{
		Webtoons:  controllers.NewWebtoonController(store, objects, time.Hour, nil),
		Analytics: controllers.NewAnalyticsController(store, views),
		Search:    controllers.NewSearchController(searcher, nil, time.Hour, nil),
		Stats:     controllers.NewStatsController(store),
		Config:    controllers.NewConfigController(cfg),
	})
	return r, store, searcher
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	r, _, _ := newTestRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"api route not found","code":40400}`, w.Body.String())
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r, _, _ := newTestRouter(t, "secret")

	for _, target := range []string{"/api/webtoon", "/api/admin/search/reindex"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
}

func TestAdminRoutesClosedWithoutSecretOutsideDebug(t *testing.T) {
	r, _, _ := newTestRouter(t, "")

	for _, target := range []string{"/api/webtoon", "/api/admin/search/reindex"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, target)
	}
}

func TestListIsPublicAndExposesPaginationHeaders(t *testing.T) {
	r, store, _ := newTestRouter(t, "secret")
	store.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
	store.EXPECT().FindMany(gomock.Any(), gomock.Any()).Return([]models.Webtoon{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/webtoon", nil)
	req.Header.Set("Origin", "https://nephtys.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Total-Pages")
}

func TestSearchRouteIsPublic(t *testing.T) {
	r, _, searcher := newTestRouter(t, "secret")
	searcher.EXPECT().Query(gomock.Any(), "").Return([]models.Webtoon{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
