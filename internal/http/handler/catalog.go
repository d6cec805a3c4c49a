package handler

import (
	"github.com/gofiber/fiber/v2"

	"stallhub/internal/http/middleware"
	"stallhub/internal/model"
	"stallhub/internal/service"
)

type stallList struct {
	Data []model.Stall `json:"data"`
}

type productList struct {
	Data []model.Product `json:"data"`
}

// ListStalls godoc
// @Summary Stalls of a business
// @Tags stalls
// @Produce json
// @Param id path string true "business id"
// @Success 200 {object} stallList
// @Router /api/businesses/{id}/stalls [get]
func ListStalls(svc service.StallService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		stalls, err := svc.ListByBusiness(c.UserContext(), middleware.GetPrincipal(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(stallList{Data: stalls})
	}
}

// CreateStall godoc
// @Summary Open a stall
// @Tags stalls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "business id"
// @Param body body service.StallInput true "stall"
// @Success 201 {object} model.Stall
// @Router /api/businesses/{id}/stalls [post]
func CreateStall(svc service.StallService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in service.StallInput
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		st, err := svc.Create(c.UserContext(), middleware.GetPrincipal(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(st)
	}
}

// GetStall godoc
// @Summary Stall by id
// @Tags stalls
// @Produce json
// @Param id path string true "stall id"
// @Success 200 {object} model.Stall
// @Router /api/stalls/{id} [get]
func GetStall(svc service.StallService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		st, err := svc.Get(c.UserContext(), middleware.GetPrincipal(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(st)
	}
}

// UpdateStall godoc
// @Summary Update a stall
// @Tags stalls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "stall id"
// @Param body body service.StallUpdate true "changes"
// @Success 200 {object} model.Stall
// @Router /api/stalls/{id} [put]
func UpdateStall(svc service.StallService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in service.StallUpdate
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		st, err := svc.Update(c.UserContext(), middleware.GetPrincipal(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(st)
	}
}

// DeleteStall godoc
// @Summary Delete a stall
// @Tags stalls
// @Security BearerAuth
// @Param id path string true "stall id"
// @Success 204
// @Router /api/stalls/{id} [delete]
func DeleteStall(svc service.StallService) fiber.Handler {
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

// ListProducts godoc
// @Summary Menu of a stall
// @Tags products
// @Produce json
// @Param id path string true "stall id"
// @Success 200 {object} productList
// @Router /api/stalls/{id}/products [get]
func ListProducts(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		products, err := svc.ListByStall(c.UserContext(), middleware.GetPrincipal(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(productList{Data: products})
	}
}

// CreateProduct godoc
// @Summary Add a product to a stall
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "stall id"
// @Param body body service.ProductInput true "product"
// @Success 201 {object} model.Product
// @Router /api/stalls/{id}/products [post]
func CreateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in service.ProductInput
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		prod, err := svc.Create(c.UserContext(), middleware.GetPrincipal(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(prod)
	}
}

// GetProduct godoc
// @Summary Product by id
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} model.Product
// @Router /api/products/{id} [get]
func GetProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		prod, err := svc.Get(c.UserContext(), middleware.GetPrincipal(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(prod)
	}
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "product id"
// @Param body body service.ProductUpdate true "changes"
// @Success 200 {object} model.Product
// @Router /api/products/{id} [put]
func UpdateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in service.ProductUpdate
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		prod, err := svc.Update(c.UserContext(), middleware.GetPrincipal(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(prod)
	}
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path string true "product id"
// @Success 204
// @Router /api/products/{id} [delete]
func DeleteProduct(svc service.ProductService) fiber.Handler {
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

// UploadProductImage godoc
// @Summary Upload a product image
// @Description multipart/form-data with the image in field "file", at most 5 MiB.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "product id"
// @Param file formData file true "image"
// @Success 200 {object} model.Product
// @Failure 400 {object} middleware.ErrorPayload
// @Router /api/products/{id}/image [post]
func UploadProductImage(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		prod, err := svc.UploadImage(c.UserContext(), middleware.GetPrincipal(c), id, service.ImageUpload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(prod)
	}
}
