package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"stallhub/internal/cache"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

// StallInput creates a stall.
type StallInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// StallUpdate changes the fields that are set.
type StallUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	SortOrder   *int    `json:"sort_order"`
}

type StallService interface {
	Create(ctx context.Context, p model.Principal, businessID string, in StallInput) (*model.Stall, error)
	Get(ctx context.Context, p model.Principal, id string) (*model.Stall, error)
	// ListByBusiness returns active stalls, or all of them for the business's staff.
	ListByBusiness(ctx context.Context, p model.Principal, businessID string) ([]model.Stall, error)
	Update(ctx context.Context, p model.Principal, id string, in StallUpdate) (*model.Stall, error)
	Delete(ctx context.Context, p model.Principal, id string) error
}

type stallService struct {
	stalls     repository.StallRepository
	businesses repository.BusinessRepository
	cache      *cache.Manager
}

func NewStallService(stalls repository.StallRepository, businesses repository.BusinessRepository, c *cache.Manager) StallService {
	return &stallService{stalls: stalls, businesses: businesses, cache: c}
}

func (s *stallService) Create(ctx context.Context, p model.Principal, businessID string, in StallInput) (*model.Stall, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if businessID == "" {
		return nil, ErrIDRequired
	}
	if !p.CanManageBusiness(businessID) {
		return nil, ErrForbidden
	}
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	if _, err := s.businesses.FindByID(ctx, businessID); err != nil {
		return nil, notFound(err)
	}

	now := utcNow()
	st := &model.Stall{
		ID:          uuid.NewString(),
		BusinessID:  businessID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Active:      true,
		SortOrder:   in.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.stalls.Create(ctx, st); err != nil {
		return nil, duplicate(err, "stall already exists")
	}
	return st, nil
}

func (s *stallService) Get(ctx context.Context, p model.Principal, id string) (*model.Stall, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	st, err := s.stalls.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !st.Active && !p.WorksAt(st.BusinessID) {
		return nil, ErrNotFound
	}
	return st, nil
}

func (s *stallService) ListByBusiness(ctx context.Context, p model.Principal, businessID string) ([]model.Stall, error) {
	if businessID == "" {
		return nil, ErrIDRequired
	}
	staff := p.WorksAt(businessID)
	b, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, notFound(err)
	}
	if !b.Active && !staff {
		return nil, ErrNotFound
	}
	return s.stalls.ListByBusiness(ctx, businessID, !staff)
}

func (s *stallService) Update(ctx context.Context, p model.Principal, id string, in StallUpdate) (*model.Stall, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	st, err := s.stalls.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	// Stall managers run the catalogue; the stall itself belongs to the owner.
	if !p.CanManageBusiness(st.BusinessID) {
		return nil, ErrForbidden
	}

	if in.Name != nil {
		if err := required("name", *in.Name); err != nil {
			return nil, err
		}
		st.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		st.Description = strings.TrimSpace(*in.Description)
	}
	if in.Active != nil {
		st.Active = *in.Active
	}
	if in.SortOrder != nil {
		st.SortOrder = *in.SortOrder
	}
	st.UpdatedAt = utcNow()
	if err := s.stalls.Update(ctx, st); err != nil {
		return nil, notFound(err)
	}
	s.cache.Delete(menuKey(st.ID))
	return st, nil
}

func (s *stallService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := requireUser(p); err != nil {
		return err
	}
	if id == "" {
		return ErrIDRequired
	}
	st, err := s.stalls.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if !p.CanManageBusiness(st.BusinessID) {
		return ErrForbidden
	}
	if err := s.stalls.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(menuKey(id))
	return nil
}
