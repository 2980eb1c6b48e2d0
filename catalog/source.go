package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"dessert-cart/models"

	"gorm.io/gorm"
)

// Source supplies the raw product list.
type Source interface {
	Products(ctx context.Context) ([]models.Product, error)
	String() string
}

// FileSource reads a JSON array of products from disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Products(ctx context.Context) ([]models.Product, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return decodeProducts(f)
}

func (s *FileSource) String() string { return "file:" + s.Path }

// URLSource fetches a JSON array of products over HTTP.
type URLSource struct {
	URL    string
	Client *http.Client
}

func (s *URLSource) Products(ctx context.Context) ([]models.Product, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	// 5MB is far above any realistic product list
	return decodeProducts(io.LimitReader(resp.Body, 5<<20))
}

func (s *URLSource) String() string { return "url:" + s.URL }

// DBSource reads products from the products table in catalog order.
type DBSource struct {
	DB *gorm.DB
}

func (s *DBSource) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.WithContext(ctx).Order("position ASC").Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return products, nil
}

func (s *DBSource) String() string { return "db" }

func decodeProducts(r io.Reader) ([]models.Product, error) {
	var products []models.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i := range products {
		products[i].Position = i
	}
	return products, nil
}

// Source kinds accepted by NewSource.
const (
	KindFile = "file"
	KindURL  = "url"
	KindDB   = "db"
)

// NewSource builds the Source for kind. location is a path for file sources
// and a URL for url sources; db is only used by db sources.
func NewSource(kind, location string, db *gorm.DB) (Source, error) {
	switch kind {
	case KindFile:
		return &FileSource{Path: location}, nil
	case KindURL:
		return &URLSource{URL: location}, nil
	case KindDB:
		if db == nil {
			return nil, fmt.Errorf("catalog source %q requires a database connection", kind)
		}
		return &DBSource{DB: db}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", kind)
	}
}
