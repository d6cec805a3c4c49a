package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stallhub/internal/cache"
	"stallhub/internal/mail"
	"stallhub/internal/model"
)

// passTx runs fn without a database. Rollback is not simulated.
type passTx struct{ calls int }

func (t *passTx) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

const (
	bizID    = "6f1c2d4e-0000-4000-8000-000000000001"
	stallA   = "stall-a"
	stallB   = "stall-b"
	adminID  = "admin-1"
	ownerID  = "owner-1"
	custID   = "cust-1"
	staffAID = "staff-a"
)

var (
	superAdmin = model.Principal{UserID: adminID, Email: "admin@example.com", Roles: []model.RoleAssignment{{Role: model.RoleSuperAdmin}}}
	owner      = model.Principal{UserID: ownerID, Email: "owner@example.com", Roles: []model.RoleAssignment{{Role: model.RoleBusinessOwner, BusinessID: bizID}}}
	customer   = model.Principal{UserID: custID, Email: "cust@example.com", Name: "Casey", Roles: []model.RoleAssignment{{Role: model.RoleCustomer}}}
	staffA     = model.Principal{UserID: staffAID, Email: "staff@example.com", Roles: []model.RoleAssignment{{Role: model.RoleStaff, BusinessID: bizID, StallID: stallA}}}
	anonymous  = model.Principal{}
)

func testCache() *cache.Manager {
	return cache.New(time.Minute)
}

func TestPageQuery(t *testing.T) {
	assert.Equal(t, 20, pageQuery(0, 0).Limit)
	assert.Equal(t, 100, pageQuery(500, 0).Limit)
	assert.Equal(t, 0, pageQuery(10, -3).Offset)
	assert.Equal(t, 7, pageQuery(10, 7).Offset)
}

func TestNormalizeEmail(t *testing.T) {
	got, err := normalizeEmail("  Alice@Example.COM ")
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)

	for _, bad := range []string{"", "alice", "Alice <alice@example.com>", "a@"} {
		_, err := normalizeEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "joes-noodle-bar", slugify("  Joe's Noodle Bar! "))
	assert.Equal(t, "maes-kitchen", slugify("Mae\u2019s Kitchen"))
	assert.True(t, slugPattern.MatchString(slugify("Food Court #1")))
}

func bg() context.Context {
	return context.Background()
}
