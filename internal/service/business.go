package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"stallhub/internal/database"
	"stallhub/internal/logging"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

// BusinessInput creates a business together with its owner account.
type BusinessInput struct {
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	Description string               `json:"description"`
	OwnerEmail  string               `json:"owner_email"`
	OwnerName   string               `json:"owner_name"`
	Settings    *model.SettingsPatch `json:"settings"`
}

// BusinessUpdate changes the fields that are set.
type BusinessUpdate struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Active      *bool                `json:"active"`
	Settings    *model.SettingsPatch `json:"settings"`
}

// BusinessQuery filters the business directory.
type BusinessQuery struct {
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// StaffInput invites a person to work at a business.
type StaffInput struct {
	Email   string         `json:"email"`
	Name    string         `json:"name"`
	Role    model.RoleName `json:"role"`
	StallID string         `json:"stall_id"`
}

// BusinessService manages tenants and their staff.
type BusinessService interface {
	// Create is reserved to super admins. The owner is invited by email.
	Create(ctx context.Context, p model.Principal, in BusinessInput) (*model.Business, error)
	// Get accepts an id or a slug. Inactive businesses are only visible to their staff.
	Get(ctx context.Context, p model.Principal, idOrSlug string) (*model.Business, error)
	List(ctx context.Context, p model.Principal, q BusinessQuery) (*Page[model.Business], error)
	Update(ctx context.Context, p model.Principal, id string, in BusinessUpdate) (*model.Business, error)
	Delete(ctx context.Context, p model.Principal, id string) error
	AddStaff(ctx context.Context, p model.Principal, businessID string, in StaffInput) (*model.User, error)
	ListStaff(ctx context.Context, p model.Principal, businessID string) ([]model.User, error)
}

type businessService struct {
	businesses repository.BusinessRepository
	stalls     repository.StallRepository
	users      repository.UserRepository
	tx         database.TxManager
	inviter    Inviter
	logger     *logging.Logger
}

// NewBusinessService constructs a BusinessService.
func NewBusinessService(
	businesses repository.BusinessRepository,
	stalls repository.StallRepository,
	users repository.UserRepository,
	tx database.TxManager,
	inviter Inviter,
	logger *logging.Logger,
) BusinessService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &businessService{
		businesses: businesses, stalls: stalls, users: users,
		tx: tx, inviter: inviter, logger: logger,
	}
}

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

func validateSettings(st *model.BusinessSettings) error {
	st.Currency = strings.ToUpper(strings.TrimSpace(st.Currency))
	if !currencyPattern.MatchString(st.Currency) {
		return invalid("currency must be a 3 letter ISO code")
	}
	if st.TaxRateBps < 0 || st.TaxRateBps > 10000 {
		return invalid("tax_rate_bps must be between 0 and 10000")
	}
	if st.ContactEmail != "" {
		email, err := normalizeEmail(st.ContactEmail)
		if err != nil {
			return invalid("contact_email is not valid")
		}
		st.ContactEmail = email
	}
	return nil
}

func (s *businessService) Create(ctx context.Context, p model.Principal, in BusinessInput) (*model.Business, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if !p.IsSuperAdmin() {
		return nil, ErrForbidden
	}
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = slugify(in.Name)
	}
	if !slugPattern.MatchString(slug) {
		return nil, invalid("slug must contain lower case letters, digits and single dashes")
	}
	settings := in.Settings.Apply(model.DefaultBusinessSettings())
	if err := validateSettings(&settings); err != nil {
		return nil, err
	}

	if _, err := s.businesses.FindBySlug(ctx, slug); err == nil {
		return nil, conflict("slug %q is taken", slug)
	} else if !errors.Is(notFound(err), ErrNotFound) {
		return nil, err
	}

	now := utcNow()
	b := &model.Business{
		ID:          uuid.NewString(),
		Slug:        slug,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Active:      true,
		Settings:    settings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		owner, err := s.inviter.Invite(ctx, InviteInput{
			Email:        in.OwnerEmail,
			Name:         in.OwnerName,
			Role:         model.RoleAssignment{Role: model.RoleBusinessOwner, BusinessID: b.ID},
			BusinessName: b.Name,
		})
		if err != nil {
			return err
		}
		b.OwnerID = owner.ID
		return duplicate(s.businesses.Create(ctx, b), "slug is taken")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("business_created", map[string]any{"business_id": b.ID, "slug": b.Slug, "owner_id": b.OwnerID})
	return b, nil
}

func (s *businessService) Get(ctx context.Context, p model.Principal, idOrSlug string) (*model.Business, error) {
	if idOrSlug == "" {
		return nil, ErrIDRequired
	}
	var (
		b   *model.Business
		err error
	)
	if _, perr := uuid.Parse(idOrSlug); perr == nil {
		b, err = s.businesses.FindByID(ctx, idOrSlug)
	} else {
		b, err = s.businesses.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, notFound(err)
	}
	if !b.Active && !p.WorksAt(b.ID) {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *businessService) List(ctx context.Context, p model.Principal, q BusinessQuery) (*Page[model.Business], error) {
	pq := pageQuery(q.Limit, q.Offset)
	res, err := s.businesses.List(ctx, repository.BusinessFilter{
		Search:     strings.TrimSpace(q.Search),
		ActiveOnly: !(q.IncludeInactive && p.IsSuperAdmin()),
		Page:       pq,
	})
	if err != nil {
		return nil, err
	}
	return newPage(res, pq), nil
}

func (s *businessService) Update(ctx context.Context, p model.Principal, id string, in BusinessUpdate) (*model.Business, error) {
	b, err := s.managed(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := required("name", *in.Name); err != nil {
			return nil, err
		}
		b.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		b.Description = strings.TrimSpace(*in.Description)
	}
	if in.Active != nil {
		// Owners may pause ordering through settings; suspension is a platform decision.
		if !p.IsSuperAdmin() {
			return nil, ErrForbidden
		}
		b.Active = *in.Active
	}
	if in.Settings != nil {
		st := in.Settings.Apply(b.Settings)
		if err := validateSettings(&st); err != nil {
			return nil, err
		}
		b.Settings = st
	}
	b.UpdatedAt = utcNow()
	if err := s.businesses.Update(ctx, b); err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (s *businessService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := requireUser(p); err != nil {
		return err
	}
	if !p.IsSuperAdmin() {
		return ErrForbidden
	}
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.businesses.FindByID(ctx, id); err != nil {
		return notFound(err)
	}
	if err := s.businesses.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("business_deleted", map[string]any{"business_id": id})
	return nil
}

func (s *businessService) AddStaff(ctx context.Context, p model.Principal, businessID string, in StaffInput) (*model.User, error) {
	b, err := s.managed(ctx, p, businessID)
	if err != nil {
		return nil, err
	}

	role := model.RoleAssignment{Role: in.Role, BusinessID: b.ID, StallID: in.StallID}
	switch in.Role {
	case model.RoleStallManager, model.RoleStaff:
	case model.RoleBusinessOwner:
		if !p.IsSuperAdmin() {
			return nil, ErrForbidden
		}
	default:
		return nil, invalid("role must be stall_manager or staff")
	}
	if !role.Validate() {
		return nil, invalid("role %q needs a stall_id", in.Role)
	}
	if in.StallID != "" {
		st, err := s.stalls.FindByID(ctx, in.StallID)
		if err != nil {
			if errors.Is(notFound(err), ErrNotFound) {
				return nil, invalid("stall does not exist")
			}
			return nil, err
		}
		if st.BusinessID != b.ID {
			return nil, invalid("stall belongs to another business")
		}
	}

	return s.inviter.Invite(ctx, InviteInput{
		Email:        in.Email,
		Name:         in.Name,
		Role:         role,
		BusinessName: b.Name,
	})
}

func (s *businessService) ListStaff(ctx context.Context, p model.Principal, businessID string) ([]model.User, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if businessID == "" {
		return nil, ErrIDRequired
	}
	if !p.WorksAt(businessID) {
		return nil, ErrForbidden
	}
	return s.users.ListByBusiness(ctx, businessID)
}

// managed loads a business the principal may change.
func (s *businessService) managed(ctx context.Context, p model.Principal, id string) (*model.Business, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	if !p.CanManageBusiness(id) {
		return nil, ErrForbidden
	}
	b, err := s.businesses.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}
