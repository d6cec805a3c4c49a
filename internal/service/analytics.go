package service

import (
	"context"
	"time"

	"stallhub/internal/cache"
	"stallhub/internal/model"
	"stallhub/internal/repository"
)

const (
	defaultAnalyticsWindow = 30 * 24 * time.Hour
	maxAnalyticsWindow     = 366 * 24 * time.Hour
	topProductsLimit       = 10
	topBusinessesLimit     = 10
)

// AnalyticsService builds dashboard reports. Results are cached until an order
// is placed or changes status.
type AnalyticsService interface {
	Platform(ctx context.Context, p model.Principal, r model.DateRange) (*model.AnalyticsReport, error)
	Business(ctx context.Context, p model.Principal, businessID string, r model.DateRange) (*model.AnalyticsReport, error)
}

type analyticsService struct {
	analytics  repository.AnalyticsRepository
	users      repository.UserRepository
	businesses repository.BusinessRepository
	cache      *cache.Manager
	timezone   string
	now        func() time.Time
}

// NewAnalyticsService buckets days in loc.
func NewAnalyticsService(
	analytics repository.AnalyticsRepository,
	users repository.UserRepository,
	businesses repository.BusinessRepository,
	c *cache.Manager,
	loc *time.Location,
) AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &analyticsService{
		analytics: analytics, users: users, businesses: businesses,
		cache: c, timezone: loc.String(), now: utcNow,
	}
}

// resolveRange fills a missing bound and rejects inverted or oversized windows.
func (s *analyticsService) resolveRange(r model.DateRange) (model.DateRange, error) {
	if r.To.IsZero() {
		r.To = s.now().Truncate(time.Minute).Add(time.Minute)
	}
	if r.From.IsZero() {
		r.From = r.To.Add(-defaultAnalyticsWindow)
	}
	r.From, r.To = r.From.UTC(), r.To.UTC()
	if !r.From.Before(r.To) {
		return r, invalid("from must be before to")
	}
	if r.To.Sub(r.From) > maxAnalyticsWindow {
		return r, invalid("range cannot exceed 366 days")
	}
	return r, nil
}

func (s *analyticsService) Platform(ctx context.Context, p model.Principal, r model.DateRange) (*model.AnalyticsReport, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if !p.IsSuperAdmin() {
		return nil, ErrForbidden
	}
	r, err := s.resolveRange(r)
	if err != nil {
		return nil, err
	}
	return s.cached(ctx, "platform", r, func(ctx context.Context) (*model.AnalyticsReport, error) {
		f := repository.AnalyticsFilter{From: r.From, To: r.To, Timezone: s.timezone}
		rep, err := s.report(ctx, f, r)
		if err != nil {
			return nil, err
		}
		if rep.Businesses, err = s.analytics.RevenueByBusiness(ctx, f, topBusinessesLimit); err != nil {
			return nil, err
		}

		totals := &model.PlatformTotals{}
		if totals.Users, totals.ActiveUsers, err = s.users.Count(ctx); err != nil {
			return nil, err
		}
		if totals.Businesses, totals.ActiveBusinesses, err = s.businesses.Count(ctx); err != nil {
			return nil, err
		}
		rep.Totals = totals
		return rep, nil
	})
}

func (s *analyticsService) Business(ctx context.Context, p model.Principal, businessID string, r model.DateRange) (*model.AnalyticsReport, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if businessID == "" {
		return nil, ErrIDRequired
	}
	if !p.CanManageBusiness(businessID) {
		return nil, ErrForbidden
	}
	r, err := s.resolveRange(r)
	if err != nil {
		return nil, err
	}
	if _, err := s.businesses.FindByID(ctx, businessID); err != nil {
		return nil, notFound(err)
	}
	return s.cached(ctx, businessID, r, func(ctx context.Context) (*model.AnalyticsReport, error) {
		rep, err := s.report(ctx, repository.AnalyticsFilter{
			BusinessID: businessID, From: r.From, To: r.To, Timezone: s.timezone,
		}, r)
		if err != nil {
			return nil, err
		}
		rep.BusinessID = businessID
		return rep, nil
	})
}

func (s *analyticsService) cached(ctx context.Context, scope string, r model.DateRange, build func(context.Context) (*model.AnalyticsReport, error)) (*model.AnalyticsReport, error) {
	key := analyticsKeyPrefix + scope + ":" + r.From.Format(time.RFC3339) + ":" + r.To.Format(time.RFC3339)
	v, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return build(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.AnalyticsReport), nil
}

// report runs the aggregates shared by both dashboards.
func (s *analyticsService) report(ctx context.Context, f repository.AnalyticsFilter, r model.DateRange) (*model.AnalyticsReport, error) {
	rep := &model.AnalyticsReport{Range: r}
	var err error
	if rep.OrdersByStatus, err = s.analytics.OrdersByStatus(ctx, f); err != nil {
		return nil, err
	}
	for _, st := range model.OrderStatuses() {
		rep.OrderCount += rep.OrdersByStatus[st]
	}

	fulfilled, revenue, err := s.analytics.Revenue(ctx, f)
	if err != nil {
		return nil, err
	}
	rep.RevenueCents = revenue
	if fulfilled > 0 {
		rep.AverageOrderCents = revenue / int64(fulfilled)
	}

	if rep.Daily, err = s.analytics.DailyRevenue(ctx, f); err != nil {
		return nil, err
	}
	if rep.TopProducts, err = s.analytics.TopProducts(ctx, f, topProductsLimit); err != nil {
		return nil, err
	}
	return rep, nil
}
