package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"catalog-viewer/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HTTPClient is the subset of *http.Client used to reach the catalog
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ProductSource defines the operations the presentation layer needs
type ProductSource interface {
	GetProducts(ctx context.Context, filter domain.FilterSpec, sort domain.SortSpec) ([]domain.Product, []domain.Product, error)
	GetStatistics(ctx context.Context, filter domain.FilterSpec, unfiltered, filtered []domain.Product) (*domain.Statistics, error)
}

// RawProduct is one record of the upstream feed
type RawProduct struct {
	ID          int64  `json:"id"`
	Price       string `json:"price"`
	BrandName   string `json:"brand_name"`
	ProductName string `json:"product_name"`
	Deleted     bool   `json:"deleted"`
	Hidden      bool   `json:"hidden"`
}

// rawProductWire keeps key presence so a missing key is not read as a zero value
type rawProductWire struct {
	ID          *int64  `json:"id"`
	Price       *string `json:"price"`
	BrandName   *string `json:"brand_name"`
	ProductName *string `json:"product_name"`
	Deleted     *bool   `json:"deleted"`
	Hidden      *bool   `json:"hidden"`
}

type productListResponse struct {
	Products *[]rawProductWire `json:"products"`
}

// decodeProductList reads the upstream payload. The products key and every
// record key must be present.
func decodeProductList(r io.Reader) ([]RawProduct, error) {
	var body productListResponse
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, err
	}
	if body.Products == nil {
		return nil, errors.New("missing products list")
	}

	raw := make([]RawProduct, 0, len(*body.Products))
	for i, item := range *body.Products {
		var missing []string
		if item.ID == nil {
			missing = append(missing, "id")
		}
		if item.Price == nil {
			missing = append(missing, "price")
		}
		if item.BrandName == nil {
			missing = append(missing, "brand_name")
		}
		if item.ProductName == nil {
			missing = append(missing, "product_name")
		}
		if item.Deleted == nil {
			missing = append(missing, "deleted")
		}
		if item.Hidden == nil {
			missing = append(missing, "hidden")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("record %d: missing %s", i, strings.Join(missing, ", "))
		}

		raw = append(raw, RawProduct{
			ID:          *item.ID,
			Price:       *item.Price,
			BrandName:   *item.BrandName,
			ProductName: *item.ProductName,
			Deleted:     *item.Deleted,
			Hidden:      *item.Hidden,
		})
	}
	return raw, nil
}

// RestDataSource reads the catalog from a REST endpoint
type RestDataSource struct {
	baseURL string
	client  HTTPClient
	logger  *zap.Logger
}

// NewRestDataSource creates a data source for baseURL. A nil client is
// replaced by an *http.Client bounded by timeout.
func NewRestDataSource(baseURL string, client HTTPClient, timeout time.Duration, logger *zap.Logger) *RestDataSource {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &RestDataSource{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// FetchRaw issues a single GET against the base URL and decodes the product list
func (s *RestDataSource) FetchRaw(ctx context.Context) ([]RawProduct, error) {
	fetchID := uuid.New().String()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrDataUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Catalog request failed",
			zap.String("fetch_id", fetchID),
			zap.String("url", s.baseURL),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: unable to get products from %s: %v", domain.ErrDataUnavailable, s.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused; a failed drain only costs the connection
		_, _ = io.Copy(io.Discard, resp.Body)
		s.logger.Warn("Catalog returned unexpected status",
			zap.String("fetch_id", fetchID),
			zap.String("url", s.baseURL),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: unable to get products from %s: status %d",
			domain.ErrDataUnavailable, s.baseURL, resp.StatusCode)
	}

	raw, err := decodeProductList(resp.Body)
	if err != nil {
		s.logger.Error("Failed to decode catalog response",
			zap.String("fetch_id", fetchID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: invalid product list: %v", domain.ErrDataUnavailable, err)
	}

	s.logger.Debug("Catalog fetched",
		zap.String("fetch_id", fetchID),
		zap.Int("records", len(raw)),
		zap.Duration("duration", time.Since(start)),
	)

	return raw, nil
}

// Normalize converts raw records into products.
// A deleted record is Deleted regardless of its hidden flag.
func Normalize(raw []RawProduct) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(raw))
	for _, item := range raw {
		price, err := ParsePrice(item.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d: %v", domain.ErrDataUnavailable, item.ID, err)
		}

		status := domain.StatusActive
		if item.Deleted {
			status = domain.StatusDeleted
		} else if item.Hidden {
			status = domain.StatusHidden
		}

		products = append(products, domain.Product{
			ProductID:   item.ID,
			Price:       price,
			BrandName:   item.BrandName,
			ProductName: item.ProductName,
			Status:      status,
		})
	}
	return products, nil
}

// ParsePrice converts a currency string such as "$1,234.50" to a number
func ParsePrice(price string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(price))

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", price, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid price %q: negative", price)
	}

	return d.InexactFloat64(), nil
}

// FetchProducts fetches and normalizes the catalog without removing duplicates
func (s *RestDataSource) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	raw, err := s.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return Normalize(raw)
}

// GetProducts fetches the catalog, removes duplicates, filters and sorts it.
// The deduplicated list before filtering is returned as well so statistics can
// be computed without a second request.
func (s *RestDataSource) GetProducts(ctx context.Context, filter domain.FilterSpec, sort domain.SortSpec) ([]domain.Product, []domain.Product, error) {
	if err := sort.Validate(); err != nil {
		return nil, nil, err
	}

	products, err := s.FetchProducts(ctx)
	if err != nil {
		return nil, nil, err
	}

	unique := Dedup(products)
	sorted, err := Sort(Filter(unique, filter), sort)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Debug("Products processed",
		zap.Int("fetched", len(products)),
		zap.Int("unique", len(unique)),
		zap.Int("matched", len(sorted)),
		zap.String("sort_by", sort.String()),
	)

	return sorted, unique, nil
}

// GetStatistics computes stats for the unfiltered and filtered product lists.
// A nil list is computed from a fresh fetch: the unfiltered list as normalized
// (duplicates kept), the filtered list deduplicated and filtered.
func (s *RestDataSource) GetStatistics(ctx context.Context, filter domain.FilterSpec, unfiltered, filtered []domain.Product) (*domain.Statistics, error) {
	if unfiltered == nil || filtered == nil {
		fetched, err := s.FetchProducts(ctx)
		if err != nil {
			return nil, err
		}
		if unfiltered == nil {
			unfiltered = fetched
		}
		if filtered == nil {
			filtered = Filter(Dedup(fetched), filter)
		}
	}

	unfilteredStats, err := domain.ComputeStats(unfiltered)
	if err != nil {
		return nil, fmt.Errorf("unfiltered statistics: %w", err)
	}

	filteredStats, err := domain.ComputeStats(filtered)
	if err != nil {
		return nil, fmt.Errorf("filtered statistics: %w", err)
	}

	return &domain.Statistics{
		Unfiltered: unfilteredStats,
		Filtered:   filteredStats,
	}, nil
}
