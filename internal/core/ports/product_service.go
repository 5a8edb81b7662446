package ports

import (
	"context"
	"io"

	"github.com/merrbio/marketplace-api/internal/core/domain"
)

// ImageUpload carries an incoming image file. Filename is only used to
// derive the object extension; the store picks its own object name.
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// CreateProductInput carries all data needed to create a catalog product.
// Farmer is the authenticated farmer's username, never client-supplied.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Farmer      string
	Image       *ImageUpload
}

// UpdateProductInput carries a partial product update. Nil fields keep their
// previous values.
type UpdateProductInput struct {
	ID          uint
	Requester   string
	Name        *string
	Description *string
	Price       *float64
	Image       *ImageUpload
}

// ProductService defines use-case operations on the catalog.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, in UpdateProductInput) (*domain.Product, error)
	// Delete removes the requester's product and best-effort releases its
	// stored image.
	Delete(ctx context.Context, id uint, requester string) error
}
