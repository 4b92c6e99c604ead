package controllers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Arylite/nephtys/models"
	"github.com/Arylite/nephtys/repository"
	"github.com/Arylite/nephtys/storage"
	"github.com/Arylite/nephtys/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	// signConcurrency bounds the signing tasks of one list request.
	signConcurrency = 8

	HeaderTotalCount  = "X-Total-Count"
	HeaderTotalPages  = "X-Total-Pages"
	HeaderCurrentPage = "X-Current-Page"
)

// WebtoonController serves the catalog list, read and create endpoints.
type WebtoonController struct {
	store        repository.WebtoonStore
	objects      storage.ObjectStore
	signedURLTTL time.Duration
	validate     *validator.Validate
	now          func() time.Time
	logger       *zap.Logger
}

// NewWebtoonController creates a WebtoonController. signedURLTTL is the lifetime of cover URLs.
func NewWebtoonController(store repository.WebtoonStore, objects storage.ObjectStore, signedURLTTL time.Duration, logger *zap.Logger) *WebtoonController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebtoonController{
		store:        store,
		objects:      objects,
		signedURLTTL: signedURLTTL,
		validate:     validator.New(),
		now:          time.Now,
		logger:       logger,
	}
}

type createWebtoonRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Status      string  `json:"status" validate:"required,oneof=ONGOING COMPLETED HIATUS DROPPED"`
	CoverImage  *string `json:"coverImage"`
}

// ListWebtoons returns one page of webtoons with signed cover URLs and pagination headers.
func (w *WebtoonController) ListWebtoons(ctx *gin.Context) {
	page, limit := parsePagination(ctx.Query("page"), ctx.Query("limit"))
	order := repository.OrderInsertion
	if ctx.Query("latest") == "true" {
		order = repository.OrderNewest
	}

	total, err := w.store.Count(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, fmt.Errorf("%w: count webtoons: %w", utils.ErrPersistence, err), 50030, "Failed to fetch webtoons")
		return
	}

	webtoons, err := w.store.FindMany(ctx.Request.Context(), repository.FindManyOptions{
		Skip:    (page - 1) * limit,
		Take:    limit,
		OrderBy: order,
	})
	if err != nil {
		utils.Fail(ctx, fmt.Errorf("%w: list webtoons: %w", utils.ErrPersistence, err), 50031, "Failed to fetch webtoons")
		return
	}

	if err := signCovers(ctx.Request.Context(), w.objects, w.signedURLTTL, webtoons); err != nil {
		utils.Fail(ctx, fmt.Errorf("%w: sign covers: %w", utils.ErrUpstreamStorage, err), 50330, "Failed to sign cover images")
		return
	}

	ctx.Header(HeaderTotalCount, strconv.FormatInt(total, 10))
	ctx.Header(HeaderTotalPages, strconv.FormatInt(totalPages(total, limit), 10))
	ctx.Header(HeaderCurrentPage, strconv.Itoa(page))
	if webtoons == nil {
		webtoons = []models.Webtoon{}
	}
	ctx.JSON(http.StatusOK, webtoons)
}

// GetWebtoon returns a single webtoon with a signed cover URL.
func (w *WebtoonController) GetWebtoon(ctx *gin.Context) {
	webtoon, err := w.store.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Fail(ctx, fmt.Errorf("%w: %w", utils.ErrNotFound, err), 40430, "Webtoon not found")
			return
		}
		utils.Fail(ctx, fmt.Errorf("%w: %w", utils.ErrPersistence, err), 50032, "Failed to fetch webtoon")
		return
	}

	single := []models.Webtoon{*webtoon}
	if err := signCovers(ctx.Request.Context(), w.objects, w.signedURLTTL, single); err != nil {
		utils.Fail(ctx, fmt.Errorf("%w: sign cover: %w", utils.ErrUpstreamStorage, err), 50331, "Failed to sign cover images")
		return
	}
	ctx.JSON(http.StatusOK, single[0])
}

// CreateWebtoon validates the payload, uploads the optional cover and inserts the record.
// Nothing is uploaded or stored unless every input check passed.
func (w *WebtoonController) CreateWebtoon(ctx *gin.Context) {
	var req createWebtoonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, fmt.Errorf("%w: %w", utils.ErrMalformedRequest, err), 40030, "Invalid request format")
		return
	}

	req.Title = utils.SanitizeText(req.Title)
	req.Description = utils.SanitizeText(req.Description)
	req.Author = utils.SanitizeText(req.Author)
	req.Status = strings.TrimSpace(req.Status)

	if err := w.validate.Struct(req); err != nil {
		if missingField(err) {
			utils.Fail(ctx, fmt.Errorf("%w: %w", utils.ErrValidation, err), 40031, "Missing required fields")
			return
		}
		utils.Fail(ctx, fmt.Errorf("%w: %w", utils.ErrValidation, err), 40032, "Invalid status")
		return
	}

	var image []byte
	if req.CoverImage != nil && strings.TrimSpace(*req.CoverImage) != "" {
		data, _, err := storage.DecodeDataURI(*req.CoverImage)
		if err != nil {
			utils.Fail(ctx, fmt.Errorf("%w: %w", utils.ErrValidation, err), 40033, "Invalid image format")
			return
		}
		image = data
	}

	webtoon := models.Webtoon{
		Title:       req.Title,
		Description: &req.Description,
		Author:      req.Author,
		Status:      models.Status(req.Status),
	}

	if image != nil {
		key := storage.CoverKey(w.now(), req.Title)
		if err := w.objects.Put(ctx.Request.Context(), key, image, storage.CoverContentType); err != nil {
			utils.Fail(ctx, fmt.Errorf("%w: put %s: %w", utils.ErrUpstreamStorage, key, err), 50310, "Failed to upload image")
			return
		}
		webtoon.CoverImage = &key
	}

	if err := w.store.Create(ctx.Request.Context(), &webtoon); err != nil {
		utils.Fail(ctx, fmt.Errorf("%w: insert webtoon: %w", utils.ErrPersistence, err), 50033, "Failed to create webtoon")
		return
	}

	w.logger.Info("webtoon created", zap.String("id", webtoon.ID), zap.Bool("cover", webtoon.CoverImage != nil))
	ctx.JSON(http.StatusCreated, webtoon)
}

// signCovers replaces every cover key with a signed URL in place. Results land by index.
func signCovers(ctx context.Context, objects storage.ObjectStore, ttl time.Duration, webtoons []models.Webtoon) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(signConcurrency)
	for i := range webtoons {
		if webtoons[i].CoverImage == nil || *webtoons[i].CoverImage == "" {
			continue
		}
		key := storage.KeyFromReference(*webtoons[i].CoverImage)
		i := i // per-iteration copy; go 1.21 loop variables are shared across iterations
		g.Go(func() error {
			signed, err := objects.SignedGetURL(gctx, key, ttl)
			if err != nil {
				return fmt.Errorf("sign %s: %w", key, err)
			}
			webtoons[i].CoverImage = &signed
			return nil
		})
	}
	return g.Wait()
}

// missingField reports whether validation failed on a required field rather than on a value rule.
func missingField(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return true
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}

// parsePagination falls back to the defaults for non-numeric or non-positive values.
// A page whose offset (page-1)*limit does not fit in an int is invalid too.
func parsePagination(pageStr, limitStr string) (int, int) {
	page := defaultPage
	limit := defaultLimit
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
		limit = l
	}
	if page-1 > math.MaxInt/limit {
		page = defaultPage
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}
