package pos

import (
	"strconv"
	"strings"
	"time"

	"github.com/minipos/minipos/internal/models"
)

// ProductFields holds the mutable attributes of a product. The identifier is
// assigned by the catalog and never changes afterwards.
type ProductFields struct {
	Name        string
	SKU         string
	Quantity    int
	Location    string
	Price       float64
	Description string
	Image       string
	Category    string
}

func (f ProductFields) validate() error {
	if strings.TrimSpace(f.Name) == "" ||
		strings.TrimSpace(f.SKU) == "" ||
		strings.TrimSpace(f.Location) == "" {
		return ErrInvalidProduct
	}
	if f.Price <= 0 || f.Quantity < 0 {
		return ErrInvalidProduct
	}
	return nil
}

// Catalog owns one account's products, kept in insertion order.
type Catalog struct {
	products []models.Product
	lastID   int64
}

// NewCatalog builds a catalog over previously persisted products.
func NewCatalog(products []models.Product) *Catalog {
	c := &Catalog{products: products}
	for _, p := range products {
		if id, err := strconv.ParseInt(p.ID, 10, 64); err == nil && id > c.lastID {
			c.lastID = id
		}
	}
	return c
}

// nextID derives an identifier from the wall clock in milliseconds, bumping
// past the last issued id so two creations within the same millisecond stay
// distinct.
func (c *Catalog) nextID() string {
	id := time.Now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return strconv.FormatInt(id, 10)
}

// Create validates the fields, assigns a fresh identifier and appends the
// product to the catalog.
func (c *Catalog) Create(f ProductFields) (models.Product, error) {
	if err := f.validate(); err != nil {
		return models.Product{}, err
	}
	p := models.Product{
		ID:          c.nextID(),
		Name:        f.Name,
		SKU:         f.SKU,
		Quantity:    f.Quantity,
		Location:    f.Location,
		Price:       f.Price,
		Description: f.Description,
		Image:       f.Image,
		Category:    f.Category,
	}
	c.products = append(c.products, p)
	return p, nil
}

// Get retrieves a product by its id.
func (c *Catalog) Get(id string) (models.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update replaces all mutable fields of an existing product.
func (c *Catalog) Update(id string, f ProductFields) (models.Product, error) {
	if err := f.validate(); err != nil {
		return models.Product{}, err
	}
	for i, p := range c.products {
		if p.ID == id {
			updated := models.Product{
				ID:          id,
				Name:        f.Name,
				SKU:         f.SKU,
				Quantity:    f.Quantity,
				Location:    f.Location,
				Price:       f.Price,
				Description: f.Description,
				Image:       f.Image,
				Category:    f.Category,
			}
			c.products[i] = updated
			return updated, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the catalog.
func (c *Catalog) Delete(id string) error {
	for i, p := range c.products {
		if p.ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// AdjustStock applies delta to the product's quantity. The quantity never
// goes negative: an adjustment that would is rejected with no mutation.
func (c *Catalog) AdjustStock(id string, delta int) (models.Product, error) {
	for i, p := range c.products {
		if p.ID == id {
			if p.Quantity+delta < 0 {
				return models.Product{}, ErrInvalidQuantityChange
			}
			c.products[i].Quantity += delta
			return c.products[i], nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Search returns products whose name, SKU or location contains the query,
// case-insensitively, in catalog order. An empty query returns everything.
func (c *Catalog) Search(query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Products()
	}
	var matches []models.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) ||
			strings.Contains(strings.ToLower(p.Location), q) {
			matches = append(matches, p)
		}
	}
	return matches
}

// Products returns a copy of the catalog in insertion order.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
