package handler

import (
	"github.com/gofiber/fiber/v2"

	"stallhub/internal/http/middleware"
	"stallhub/internal/model"
	"stallhub/internal/service"
)

// ListBusinesses godoc
// @Summary Business directory
// @Tags businesses
// @Produce json
// @Param q query string false "name search"
// @Param include_inactive query bool false "super admins only"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} service.Page[model.Business]
// @Router /api/businesses [get]
func ListBusinesses(svc service.BusinessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := businessQuery(c)
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.List(c.UserContext(), middleware.GetPrincipal(c), q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func businessQuery(c *fiber.Ctx) (service.BusinessQuery, error) {
	limit, offset, err := pageParams(c)
	if err != nil {
		return service.BusinessQuery{}, err
	}
	inactive, err := boolParam(c, "include_inactive")
	if err != nil {
		return service.BusinessQuery{}, err
	}
	return service.BusinessQuery{
		Search:          c.Query("q"),
		IncludeInactive: inactive != nil && *inactive,
		Limit:           limit,
		Offset:          offset,
	}, nil
}

// GetBusiness godoc
// @Summary Business by id or slug
// @Tags businesses
// @Produce json
// @Param id path string true "id or slug"
// @Success 200 {object} model.Business
// @Failure 404 {object} middleware.ErrorPayload
// @Router /api/businesses/{id} [get]
func GetBusiness(svc service.BusinessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b, err := svc.Get(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(b)
	}
}

// CreateBusiness godoc
// @Summary Create a business and invite its owner
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.BusinessInput true "business"
// @Success 201 {object} model.Business
// @Router /api/businesses [post]
func CreateBusiness(svc service.BusinessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.BusinessInput
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		b, err := svc.Create(c.UserContext(), middleware.GetPrincipal(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

// UpdateBusiness godoc
// @Summary Update a business
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "business id"
// @Param body body service.BusinessUpdate true "changes"
// @Success 200 {object} model.Business
// @Router /api/businesses/{id} [put]
func UpdateBusiness(svc service.BusinessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in service.BusinessUpdate
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		b, err := svc.Update(c.UserContext(), middleware.GetPrincipal(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(b)
	}
}

// DeleteBusiness godoc
// @Summary Delete a business
// @Tags businesses
// @Security BearerAuth
// @Param id path string true "business id"
// @Success 204
// @Router /api/businesses/{id} [delete]
func DeleteBusiness(svc service.BusinessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Delete(c.UserContext(), middleware.GetPrincipal(c), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type staffList struct {
	Data []model.User `json:"data"`
}

// ListStaff godoc
// @Summary People working at a business
// @Tags businesses
// @Produce json
// @Security BearerAuth
// @Param id path string true "business id"
// @Success 200 {object} staffList
// @Router /api/businesses/{id}/staff [get]
func ListStaff(svc service.BusinessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		users, err := svc.ListStaff(c.UserContext(), middleware.GetPrincipal(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(staffList{Data: users})
	}
}

// AddStaff godoc
// @Summary Invite a staff member
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "business id"
// @Param body body service.StaffInput true "staff"
// @Success 201 {object} model.User
// @Router /api/businesses/{id}/staff [post]
func AddStaff(svc service.BusinessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in service.StaffInput
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		u, err := svc.AddStaff(c.UserContext(), middleware.GetPrincipal(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}
