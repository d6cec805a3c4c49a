package service

import (
	"context"
	"errors"
	"strings"

	"stallhub/internal/model"
	"stallhub/internal/repository"
)

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 99

// CartItemInput adds a product to the cart.
type CartItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

// CartLineUpdate changes the fields of a cart line that are set.
type CartLineUpdate struct {
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
}

type CartService interface {
	Get(ctx context.Context, p model.Principal) (*model.CartView, error)
	// AddItem merges into an existing line for the same product.
	AddItem(ctx context.Context, p model.Principal, in CartItemInput) (*model.CartView, error)
	// UpdateItem changes the fields of a line that are set; a zero quantity removes the line.
	UpdateItem(ctx context.Context, p model.Principal, productID string, in CartLineUpdate) (*model.CartView, error)
	RemoveItem(ctx context.Context, p model.Principal, productID string) (*model.CartView, error)
	Clear(ctx context.Context, p model.Principal) error
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{carts: carts, products: products}
}

func (s *cartService) Get(ctx context.Context, p model.Principal) (*model.CartView, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

func (s *cartService) AddItem(ctx context.Context, p model.Principal, in CartItemInput) (*model.CartView, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if in.ProductID == "" {
		return nil, invalid("product_id is required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 || in.Quantity > MaxLineQuantity {
		return nil, invalid("quantity must be between 1 and %d", MaxLineQuantity)
	}

	prod, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, notFound(err)
	}
	if !prod.Available {
		return nil, ErrProductUnavailable
	}

	c, err := s.load(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) > 0 && c.BusinessID != prod.BusinessID {
		return nil, conflict("cart holds items of another business; clear it first")
	}
	c.BusinessID = prod.BusinessID

	notes := strings.TrimSpace(in.Notes)
	if i := c.Find(prod.ID); i >= 0 {
		q := c.Items[i].Quantity + in.Quantity
		if q > MaxLineQuantity {
			return nil, invalid("quantity must be between 1 and %d", MaxLineQuantity)
		}
		c.Items[i].Quantity = q
		if notes != "" {
			c.Items[i].Notes = notes
		}
	} else {
		c.Items = append(c.Items, model.CartItem{
			ProductID: prod.ID,
			StallID:   prod.StallID,
			Quantity:  in.Quantity,
			Notes:     notes,
		})
	}
	return s.save(ctx, c)
}

func (s *cartService) UpdateItem(ctx context.Context, p model.Principal, productID string, in CartLineUpdate) (*model.CartView, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if in.Quantity == nil && in.Notes == nil {
		return nil, invalid("quantity or notes is required")
	}
	if in.Quantity != nil && (*in.Quantity < 0 || *in.Quantity > MaxLineQuantity) {
		return nil, invalid("quantity must be between 0 and %d", MaxLineQuantity)
	}
	c, err := s.load(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	i := c.Find(productID)
	if i < 0 {
		return nil, ErrNotFound
	}
	if in.Quantity != nil && *in.Quantity == 0 {
		c.Remove(productID)
		return s.save(ctx, c)
	}
	if in.Quantity != nil {
		c.Items[i].Quantity = *in.Quantity
	}
	if in.Notes != nil {
		c.Items[i].Notes = strings.TrimSpace(*in.Notes)
	}
	return s.save(ctx, c)
}

func (s *cartService) RemoveItem(ctx context.Context, p model.Principal, productID string) (*model.CartView, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if !c.Remove(productID) {
		return nil, ErrNotFound
	}
	return s.save(ctx, c)
}

func (s *cartService) Clear(ctx context.Context, p model.Principal) error {
	if err := requireUser(p); err != nil {
		return err
	}
	return s.carts.Delete(ctx, p.UserID)
}

// load returns the stored cart or an empty one.
func (s *cartService) load(ctx context.Context, userID string) (*model.Cart, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
		}
		return nil, err
	}
	return c, nil
}

func (s *cartService) save(ctx context.Context, c *model.Cart) (*model.CartView, error) {
	c.UpdatedAt = utcNow()
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

// view prices every line against the current catalogue. Lines whose product
// vanished or is unavailable are flagged and left out of the subtotal.
func (s *cartService) view(ctx context.Context, c *model.Cart) (*model.CartView, error) {
	v := &model.CartView{
		UserID:     c.UserID,
		BusinessID: c.BusinessID,
		Lines:      make([]model.CartLine, 0, len(c.Items)),
		UpdatedAt:  c.UpdatedAt,
	}
	for _, it := range c.Items {
		line := model.CartLine{CartItem: it}
		prod, err := s.products.FindByID(ctx, it.ProductID)
		switch {
		case err == nil:
			line.Name = prod.Name
			line.UnitPriceCents = prod.PriceCents
			line.Available = prod.Available
		case errors.Is(notFound(err), ErrNotFound):
		default:
			return nil, err
		}
		if line.Available {
			line.LineTotalCents = line.UnitPriceCents * int64(it.Quantity)
			v.SubtotalCents += line.LineTotalCents
			v.ItemCount += it.Quantity
		}
		v.Lines = append(v.Lines, line)
	}
	return v, nil
}
