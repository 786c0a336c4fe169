package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

// Product is the read-only catalog record the cart consumes by reference.
// The catalog owns this data; the storefront never mutates it.
type Product struct {
	ID           string
	Title        string
	Image        string
	Category     string
	PriceInCents int64
	Variants     []Variant
}

type Variant struct {
	ID           string
	Title        string
	PriceInCents int64
}

// DefaultVariant synthesizes the variant for catalog products that carry
// none: "<productId>-default" / "Standard" at the product's own price.
func DefaultVariant(p *Product) Variant {
	return Variant{
		ID:           p.ID + "-default",
		Title:        "Standard",
		PriceInCents: p.PriceInCents,
	}
}

// ResolveVariant picks the product variant with the given id, or the
// synthetic default when no id is given and the product has no variants.
func ResolveVariant(p *Product, variantID string) (Variant, error) {
	if variantID == "" {
		if len(p.Variants) > 0 {
			return p.Variants[0], nil
		}
		return DefaultVariant(p), nil
	}
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, nil
		}
	}
	if variantID == p.ID+"-default" {
		return DefaultVariant(p), nil
	}
	return Variant{}, fmt.Errorf("product %s has no variant %s", p.ID, variantID)
}

// Client is the catalog reference collaborator.
type Client interface {
	Product(ctx context.Context, id string) (*Product, error)
	Products(ctx context.Context, category string) ([]Product, error)
}

// HTTPClient reads the remote catalog service. Concurrent fetches of the
// same product are collapsed through singleflight.
type HTTPClient struct {
	rest *resty.Client
	sfg  singleflight.Group
}

func NewHTTPClient(baseURL string) *HTTPClient {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	return &HTTPClient{rest: rest}
}

// Catalog identifiers may be numeric or string on the wire; they are coerced
// to their canonical string form here, at the adapter boundary.
type productPayload struct {
	ID           json.Number      `json:"id"`
	Name         string           `json:"name"`
	ImageURL     string           `json:"image_url"`
	Category     string           `json:"category"`
	PriceInCents int64            `json:"price_in_cents"`
	Variants     []variantPayload `json:"variants"`
}

type variantPayload struct {
	ID           json.Number `json:"id"`
	Title        string      `json:"title"`
	PriceInCents int64       `json:"price_in_cents"`
}

func (p productPayload) toProduct() Product {
	product := Product{
		ID:           p.ID.String(),
		Title:        p.Name,
		Image:        p.ImageURL,
		Category:     p.Category,
		PriceInCents: p.PriceInCents,
	}
	for _, v := range p.Variants {
		product.Variants = append(product.Variants, Variant{
			ID:           v.ID.String(),
			Title:        v.Title,
			PriceInCents: v.PriceInCents,
		})
	}
	return product
}

func (c *HTTPClient) Product(ctx context.Context, id string) (*Product, error) {
	v, err, _ := c.sfg.Do(id, func() (interface{}, error) {
		var payload productPayload
		resp, err := c.rest.R().
			SetContext(ctx).
			SetResult(&payload).
			Get("/products/" + id)
		if err != nil {
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}
		if resp.StatusCode() == http.StatusNotFound {
			return nil, ErrProductNotFound
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("catalog returned status %d: %s", resp.StatusCode(), resp.Body())
		}
		product := payload.toProduct()
		return &product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Product), nil
}

func (c *HTTPClient) Products(ctx context.Context, category string) ([]Product, error) {
	req := c.rest.R().SetContext(ctx)
	if category != "" {
		req.SetQueryParam("category", category)
	}

	var payloads []productPayload
	resp, err := req.SetResult(&payloads).Get("/products")
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d: %s", resp.StatusCode(), resp.Body())
	}

	products := make([]Product, 0, len(payloads))
	for _, p := range payloads {
		products = append(products, p.toProduct())
	}
	return products, nil
}
