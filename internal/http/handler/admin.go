package handler

import (
	"github.com/gofiber/fiber/v2"

	"stallhub/internal/http/middleware"
	"stallhub/internal/model"
	"stallhub/internal/service"
)

type activeRequest struct {
	Active *bool `json:"active"`
}

type rolesRequest struct {
	Roles []model.RoleAssignment `json:"roles"`
}

// PlatformAnalytics godoc
// @Summary Platform-wide sales and growth
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param from query string false "RFC 3339 or YYYY-MM-DD"
// @Param to query string false "RFC 3339 or YYYY-MM-DD, inclusive day"
// @Success 200 {object} model.AnalyticsReport
// @Router /api/admin/analytics [get]
func PlatformAnalytics(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := dateRange(c)
		if err != nil {
			return respondError(c, err)
		}
		report, err := svc.Platform(c.UserContext(), middleware.GetPrincipal(c), r)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	}
}

// BusinessAnalytics godoc
// @Summary Sales report of one business
// @Tags businesses
// @Produce json
// @Security BearerAuth
// @Param id path string true "business id"
// @Param from query string false "RFC 3339 or YYYY-MM-DD"
// @Param to query string false "RFC 3339 or YYYY-MM-DD, inclusive day"
// @Success 200 {object} model.AnalyticsReport
// @Router /api/businesses/{id}/analytics [get]
func BusinessAnalytics(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		r, err := dateRange(c)
		if err != nil {
			return respondError(c, err)
		}
		report, err := svc.Business(c.UserContext(), middleware.GetPrincipal(c), id, r)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	}
}

// ListUsers godoc
// @Summary User directory
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "name or email search"
// @Param role query string false "role filter"
// @Param active query bool false "active filter"
// @Success 200 {object} service.Page[model.User]
// @Router /api/admin/users [get]
func ListUsers(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return respondError(c, err)
		}
		active, err := boolParam(c, "active")
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.ListUsers(c.UserContext(), middleware.GetPrincipal(c), service.UserQuery{
			Search: c.Query("q"),
			Role:   model.RoleName(c.Query("role")),
			Active: active,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// SetUserActive godoc
// @Summary Activate or deactivate a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 200 {object} model.User
// @Router /api/admin/users/{id}/active [patch]
func SetUserActive(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in activeRequest
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		if in.Active == nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "active is required")
		}
		u, err := svc.SetActive(c.UserContext(), middleware.GetPrincipal(c), id, *in.Active)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

// SetUserRoles godoc
// @Summary Replace the roles of a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 200 {object} model.User
// @Router /api/admin/users/{id}/roles [put]
func SetUserRoles(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in rolesRequest
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		u, err := svc.SetRoles(c.UserContext(), middleware.GetPrincipal(c), id, in.Roles)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 204
// @Router /api/admin/users/{id} [delete]
func DeleteUser(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.DeleteUser(c.UserContext(), middleware.GetPrincipal(c), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AdminBusinesses godoc
// @Summary Every business, including suspended ones
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Page[model.Business]
// @Router /api/admin/businesses [get]
func AdminBusinesses(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := businessQuery(c)
		if err != nil {
			return respondError(c, err)
		}
		if c.Query("include_inactive") == "" {
			q.IncludeInactive = true
		}
		res, err := svc.ListBusinesses(c.UserContext(), middleware.GetPrincipal(c), q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// SystemStatus godoc
// @Summary Runtime, database, cache and request statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} monitor.Snapshot
// @Router /api/admin/system [get]
func SystemStatus(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.System(c.UserContext(), middleware.GetPrincipal(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(snap)
	}
}
