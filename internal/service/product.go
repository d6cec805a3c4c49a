package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"stallhub/internal/cache"
	"stallhub/internal/logging"
	"stallhub/internal/model"
	"stallhub/internal/repository"
	"stallhub/internal/storage"
)

// imageURLExpiry bounds how long a presigned product image URL stays valid.
const imageURLExpiry = time.Hour

// ProductInput creates a product.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents"`
	Available   *bool  `json:"available"`
}

// ProductUpdate changes the fields that are set.
type ProductUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	PriceCents  *int64  `json:"price_cents"`
	Available   *bool   `json:"available"`
}

// ImageUpload is an image streamed from a multipart request.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type ProductService interface {
	Create(ctx context.Context, p model.Principal, stallID string, in ProductInput) (*model.Product, error)
	Get(ctx context.Context, p model.Principal, id string) (*model.Product, error)
	// ListByStall returns the menu of a stall. The public menu only lists available
	// products and is served from cache.
	ListByStall(ctx context.Context, p model.Principal, stallID string) ([]model.Product, error)
	Update(ctx context.Context, p model.Principal, id string, in ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, p model.Principal, id string) error
	// UploadImage stores a new image for the product and removes the previous one.
	UploadImage(ctx context.Context, p model.Principal, id string, img ImageUpload) (*model.Product, error)
}

type productService struct {
	products   repository.ProductRepository
	stalls     repository.StallRepository
	businesses repository.BusinessRepository
	store      storage.Storage
	cache      *cache.Manager
	logger     *logging.Logger
}

func NewProductService(
	products repository.ProductRepository,
	stalls repository.StallRepository,
	businesses repository.BusinessRepository,
	store storage.Storage,
	c *cache.Manager,
	logger *logging.Logger,
) ProductService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &productService{
		products: products, stalls: stalls, businesses: businesses,
		store: store, cache: c, logger: logger,
	}
}

func menuKey(stallID string) string {
	return "menu:" + stallID
}

func (s *productService) Create(ctx context.Context, p model.Principal, stallID string, in ProductInput) (*model.Product, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if stallID == "" {
		return nil, ErrIDRequired
	}
	st, err := s.stalls.FindByID(ctx, stallID)
	if err != nil {
		return nil, notFound(err)
	}
	if !p.CanManageStall(st.BusinessID, st.ID) {
		return nil, ErrForbidden
	}
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	if in.PriceCents <= 0 {
		return nil, invalid("price_cents must be positive")
	}

	now := utcNow()
	prod := &model.Product{
		ID:          uuid.NewString(),
		BusinessID:  st.BusinessID,
		StallID:     st.ID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		PriceCents:  in.PriceCents,
		Available:   in.Available == nil || *in.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, prod); err != nil {
		return nil, duplicate(err, "product already exists")
	}
	s.cache.Delete(menuKey(st.ID))
	return prod, nil
}

func (s *productService) Get(ctx context.Context, p model.Principal, id string) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	prod, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !p.WorksAt(prod.BusinessID) {
		if !prod.Available {
			return nil, ErrNotFound
		}
		st, err := s.stalls.FindByID(ctx, prod.StallID)
		if err != nil {
			return nil, notFound(err)
		}
		if err := s.requireListed(ctx, st); err != nil {
			return nil, err
		}
	}
	s.withImageURL(ctx, prod)
	return prod, nil
}

func (s *productService) ListByStall(ctx context.Context, p model.Principal, stallID string) ([]model.Product, error) {
	if stallID == "" {
		return nil, ErrIDRequired
	}
	st, err := s.stalls.FindByID(ctx, stallID)
	if err != nil {
		return nil, notFound(err)
	}

	if p.WorksAt(st.BusinessID) {
		items, err := s.products.ListByStall(ctx, stallID, false)
		if err != nil {
			return nil, err
		}
		s.withImageURLs(ctx, items)
		return items, nil
	}
	if err := s.requireListed(ctx, st); err != nil {
		return nil, err
	}

	v, err := s.cache.GetOrLoad(ctx, menuKey(stallID), func(ctx context.Context) (any, error) {
		items, err := s.products.ListByStall(ctx, stallID, true)
		if err != nil {
			return nil, err
		}
		s.withImageURLs(ctx, items)
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	// Cached slices are shared between callers.
	cached := v.([]model.Product)
	out := make([]model.Product, len(cached))
	copy(out, cached)
	return out, nil
}

// requireListed hides stalls that are closed or belong to a suspended business.
func (s *productService) requireListed(ctx context.Context, st *model.Stall) error {
	if !st.Active {
		return ErrNotFound
	}
	b, err := s.businesses.FindByID(ctx, st.BusinessID)
	if err != nil {
		return notFound(err)
	}
	if !b.Active {
		return ErrNotFound
	}
	return nil
}

func (s *productService) Update(ctx context.Context, p model.Principal, id string, in ProductUpdate) (*model.Product, error) {
	prod, err := s.managed(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := required("name", *in.Name); err != nil {
			return nil, err
		}
		prod.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		prod.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		prod.Category = strings.TrimSpace(*in.Category)
	}
	if in.PriceCents != nil {
		if *in.PriceCents <= 0 {
			return nil, invalid("price_cents must be positive")
		}
		prod.PriceCents = *in.PriceCents
	}
	if in.Available != nil {
		prod.Available = *in.Available
	}
	prod.UpdatedAt = utcNow()
	if err := s.products.Update(ctx, prod); err != nil {
		return nil, notFound(err)
	}
	s.cache.Delete(menuKey(prod.StallID))
	s.withImageURL(ctx, prod)
	return prod, nil
}

func (s *productService) Delete(ctx context.Context, p model.Principal, id string) error {
	prod, err := s.managed(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(menuKey(prod.StallID))
	if prod.ImageKey != "" {
		if err := s.store.Delete(ctx, prod.ImageKey); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			s.logger.Error("product_image_delete_failed", err, map[string]any{"product_id": id, "key": prod.ImageKey})
		}
	}
	return nil
}

func (s *productService) UploadImage(ctx context.Context, p model.Principal, id string, img ImageUpload) (*model.Product, error) {
	if img.Reader == nil {
		return nil, ErrReaderNil
	}
	if err := storage.ValidateImage(img.ContentType, img.Size); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	prod, err := s.managed(ctx, p, id)
	if err != nil {
		return nil, err
	}

	key := storage.ProductImageKey(prod.ID, img.Filename, img.ContentType)
	obj, err := s.store.Put(ctx, key, img.Reader, storage.PutObjectOptions{
		Size:        img.Size,
		ContentType: img.ContentType,
		Metadata:    map[string]string{"original-filename": img.Filename, "product-id": prod.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	previous := prod.ImageKey
	prod.ImageKey = obj.Key
	prod.UpdatedAt = utcNow()
	if err := s.products.Update(ctx, prod); err != nil {
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	if previous != "" && previous != obj.Key {
		if err := s.store.Delete(ctx, previous); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			s.logger.Error("product_image_delete_failed", err, map[string]any{"product_id": prod.ID, "key": previous})
		}
	}

	s.cache.Delete(menuKey(prod.StallID))
	s.withImageURL(ctx, prod)
	return prod, nil
}

// managed loads a product the principal may change.
func (s *productService) managed(ctx context.Context, p model.Principal, id string) (*model.Product, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	prod, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !p.CanManageStall(prod.BusinessID, prod.StallID) {
		return nil, ErrForbidden
	}
	return prod, nil
}

func (s *productService) withImageURL(ctx context.Context, prod *model.Product) {
	if prod.ImageKey == "" {
		return
	}
	u, err := s.store.PresignGet(ctx, prod.ImageKey, imageURLExpiry)
	if err != nil {
		s.logger.Warn("product_image_presign_failed", map[string]any{"product_id": prod.ID, "error": err.Error()})
		return
	}
	prod.ImageURL = u
}

func (s *productService) withImageURLs(ctx context.Context, items []model.Product) {
	for i := range items {
		s.withImageURL(ctx, &items[i])
	}
}
