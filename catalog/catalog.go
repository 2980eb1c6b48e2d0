package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dessert-cart/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrUnknownProduct = errors.New("unknown product")

// Catalog is the immutable product list loaded at startup.
type Catalog struct {
	products []models.Product
	byName   map[string]int
}

func New(products []models.Product) *Catalog {
	c := &Catalog{
		products: make([]models.Product, len(products)),
		byName:   make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		c.byName[p.Name] = i
	}
	return c
}

// Products returns a copy of the product list in catalog order.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find looks up a product by name.
func (c *Catalog) Find(name string) (models.Product, error) {
	i, ok := c.byName[name]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, name)
	}
	return c.products[i], nil
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Loader fetches and validates the catalog from a Source.
type Loader struct {
	source   Source
	validate *validator.Validate
	logger   *zap.Logger
}

func NewLoader(source Source, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		source:   source,
		validate: validator.New(),
		logger:   logger,
	}
}

// Load fetches the products and rejects the whole list if any record is
// malformed.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	products, err := l.source.Products(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.check(products); err != nil {
		return nil, err
	}

	l.logger.Info("catalog loaded",
		zap.String("source", l.source.String()),
		zap.Int("products", len(products)),
	)
	return New(products), nil
}

// LoadOrEmpty is Load for startup: a failure is logged and an empty catalog is
// returned together with the error so the storefront can still serve the cart.
func (l *Loader) LoadOrEmpty(ctx context.Context) (*Catalog, error) {
	c, err := l.Load(ctx)
	if err != nil {
		l.logger.Error("error loading products",
			zap.String("source", l.source.String()),
			zap.Error(err),
		)
		return New(nil), err
	}
	return c, nil
}

func (l *Loader) check(products []models.Product) error {
	seen := make(map[string]bool, len(products))
	var problems []string

	for i, p := range products {
		if err := l.validate.Struct(p); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					problems = append(problems, fmt.Sprintf("record %d: %s is %s", i, strings.ToLower(fe.Namespace()), fe.Tag()))
				}
			} else {
				problems = append(problems, fmt.Sprintf("record %d: %v", i, err))
			}
		}
		if p.Price.IsNegative() {
			problems = append(problems, fmt.Sprintf("record %d: price %s is negative", i, p.Price))
		}
		if p.Name != "" && seen[p.Name] {
			problems = append(problems, fmt.Sprintf("record %d: duplicate name %q", i, p.Name))
		}
		seen[p.Name] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid catalog: %s", strings.Join(problems, "; "))
	}
	return nil
}
