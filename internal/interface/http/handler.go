package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carikost/carikost/internal/domain/catalog"
	"github.com/carikost/carikost/internal/domain/chat"
	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/domain/search"
	apperrors "github.com/carikost/carikost/pkg/errors"
)

const defaultMaxBudget = 1_000_000

// Handler wires the HTTP transport to domain services.
type Handler struct {
	searchSvc  search.Service
	chatSvc    chat.Service
	catalogSvc catalog.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(searchSvc search.Service, chatSvc chat.Service, catalogSvc catalog.Service, logger *slog.Logger) *Handler {
	return &Handler{
		searchSvc:  searchSvc,
		chatSvc:    chatSvc,
		catalogSvc: catalogSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Search runs a filtered kost search from query parameters.
func (h *Handler) Search(c *gin.Context) {
	filters := listing.Filters{
		Location:   c.Query("location"),
		MaxBudget:  defaultMaxBudget,
		Facilities: splitCSV(c.Query("facilities")),
		Category:   listing.ParseRequestedCategory(c.Query("type")),
	}
	if raw := c.Query("maxBudget"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "maxBudget must be a number", err))
			return
		}
		filters.MaxBudget = parsed
	}

	results, err := h.searchSvc.Search(c.Request.Context(), filters)
	if err != nil {
		status := http.StatusInternalServerError
		code := "search_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, results)
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat answers a conversational message, either with search results or a
// persona reply.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "message is required", err))
		return
	}

	resp, err := h.chatSvc.Respond(c.Request.Context(), req.Message)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chat_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Listings returns the persisted catalog verbatim.
func (h *Handler) Listings(c *gin.Context) {
	items, err := h.catalogSvc.Listings(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "catalog_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, items)
}

type syncRequest struct {
	Keyword string `json:"keyword"`
}

// Sync refreshes the catalog from the configured sources.
func (h *Handler) Sync(c *gin.Context) {
	var req syncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "body must be JSON", err))
			return
		}
	}

	report, err := h.catalogSvc.Sync(c.Request.Context(), req.Keyword)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "sync_failed", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Data synchronized successfully",
		"added":   report.Added,
		"total":   report.Total,
		"sources": report.Sources,
	})
}

func splitCSV(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
