package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/merrbio/marketplace-api/internal/core/domain"
	"github.com/merrbio/marketplace-api/internal/core/ports"
)

// ImageStore abstracts the external image storage collaborator. Upload
// returns a stable public URL; Delete releases the object that URL points at.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, imageURL string) error
}

// CatalogCache abstracts the read-through cache in front of the public
// product listing.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Product, bool, error)
	Set(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

// ProductService implements catalog use cases.
type ProductService struct {
	repo   ports.ProductRepository
	images ImageStore
	cache  CatalogCache
	log    zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, images ImageStore, cache CatalogCache, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, images: images, cache: cache, log: log}
}

// List returns the full catalog, served through the cache when possible.
// Cache failures degrade to a direct repository read.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		if products, ok, err := s.cache.Get(ctx); err != nil {
			s.log.Warn().Err(err).Msg("catalog cache read failed, falling back to store")
		} else if ok {
			return products, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			s.log.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return products, nil
}

// Create validates and persists a new product for the authenticated farmer,
// uploading the image first when one is attached.
func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	if err := validateProductFields(strings.TrimSpace(in.Name), in.Price); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Farmer:      in.Farmer,
	}

	if in.Image != nil {
		url, err := s.images.Upload(ctx, in.Image.Filename, in.Image.ContentType, in.Image.Reader)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		product.ImageURL = url
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.log.Info().Uint("product_id", product.ID).Str("farmer", product.Farmer).Msg("product created")
	return product, nil
}

// Update applies a partial update to the requester's own product. Nil fields
// keep their previous values. A replaced image's predecessor is released
// best-effort.
func (s *ProductService) Update(ctx context.Context, in ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if product.Farmer != in.Requester {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if err := validateProductFields(product.Name, product.Price); err != nil {
		return nil, err
	}

	if in.Image != nil {
		url, err := s.images.Upload(ctx, in.Image.Filename, in.Image.ContentType, in.Image.Reader)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		if product.ImageURL != "" {
			s.releaseImage(ctx, product.ImageURL)
		}
		product.ImageURL = url
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	return product, nil
}

// Delete removes the requester's own product. The stored image is released
// afterwards; a cleanup failure is logged and never fails the delete.
func (s *ProductService) Delete(ctx context.Context, id uint, requester string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product.Farmer != requester {
		return domain.ErrForbidden
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrProductNotFound
	}

	if product.ImageURL != "" {
		s.releaseImage(ctx, product.ImageURL)
	}

	s.invalidateCatalog(ctx)
	s.log.Info().Uint("product_id", id).Str("farmer", requester).Msg("product deleted")
	return nil
}

func (s *ProductService) releaseImage(ctx context.Context, imageURL string) {
	if err := s.images.Delete(ctx, imageURL); err != nil {
		s.log.Warn().Err(err).Str("image_url", imageURL).Msg("image cleanup failed")
	}
}

func (s *ProductService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

func validateProductFields(name string, price float64) error {
	var details []string
	if name == "" {
		details = append(details, "name is required")
	}
	if price <= 0 {
		details = append(details, "price must be a positive number")
	}
	if len(details) > 0 {
		return domain.NewValidationError(details...)
	}
	return nil
}
