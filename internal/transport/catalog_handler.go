package transport

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"catalog-viewer/internal/domain"
	"catalog-viewer/internal/middleware"
	"catalog-viewer/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData feeds the "page" template
type pageData struct {
	Title       string
	Listing     *service.ProductListing
	ShowStats   bool
	Statistics  *domain.Statistics
	StatsNotice string
}

// CatalogHandler handles HTTP requests for catalog pages and the JSON API
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/products", h.Products)
	r.Get("/statistics", h.Statistics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ProductsJSON)
		r.Get("/statistics", h.StatisticsJSON)
	})
}

// parseQuery reads and validates the status and sort_by parameters.
// It writes the error response and returns false when they are invalid.
func (h *CatalogHandler) parseQuery(w http.ResponseWriter, r *http.Request) (service.CatalogQuery, bool) {
	values := r.URL.Query()
	q := service.CatalogQuery{
		Status:    values.Get("status"),
		HasStatus: values.Has("status"),
		SortBy:    values.Get("sort_by"),
	}

	if err := middleware.ValidateQuery(&q); err != nil {
		h.logger.Debug("Query validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return q, false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid query")
		return q, false
	}

	return q, true
}

// Index renders the product table followed by the statistics of the same fetch
func (h *CatalogHandler) Index(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	overview, err := h.catalogService.Overview(r.Context(), q)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.render(w, pageData{
		Title:       "Catalog",
		Listing:     overview.Listing,
		ShowStats:   true,
		Statistics:  overview.Statistics,
		StatsNotice: statsNotice(overview.StatsErr),
	})
}

// Products renders the filtered and sorted product table
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	listing, err := h.catalogService.ListProducts(r.Context(), q)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.render(w, pageData{Title: "Products", Listing: listing})
}

// Statistics renders the statistics of a fresh fetch
func (h *CatalogHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	stats, err := h.catalogService.Statistics(r.Context(), q)
	if err != nil && !errors.Is(err, domain.ErrEmptyDataset) {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.render(w, pageData{
		Title:       "Statistics",
		ShowStats:   true,
		Statistics:  stats,
		StatsNotice: statsNotice(err),
	})
}

// ProductsJSON returns the filtered and sorted products as JSON
func (h *CatalogHandler) ProductsJSON(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	listing, err := h.catalogService.ListProducts(r.Context(), q)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": listing.Products,
		"count":    len(listing.Products),
	})
}

// StatisticsJSON returns the statistics as JSON
func (h *CatalogHandler) StatisticsJSON(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	stats, err := h.catalogService.Statistics(r.Context(), q)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *CatalogHandler) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "page", data); err != nil {
		h.logger.Error("Failed to render page", zap.String("title", data.Title), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Debug("Failed to write page", zap.String("title", data.Title), zap.Error(err))
	}
}

func statsNotice(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, domain.ErrEmptyDataset) {
		return "No products match the query, statistics are unavailable."
	}
	return "Statistics are unavailable."
}
