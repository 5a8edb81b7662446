package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/merrbio/marketplace-api/internal/api/metrics"
	"github.com/merrbio/marketplace-api/internal/core/domain"
	"github.com/merrbio/marketplace-api/internal/core/ports"
)

// ProductHandler handles catalog routes. Mutations accept multipart form
// data so an image file can ride along with the fields.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// allowedImageExts mirrors the upload filter of the web frontend.
var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// List handles GET /products — the public catalog.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {array}   domain.Product
// @Failure      500  {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Create handles POST /products (multipart form: name, description, price,
// optional image file). The owning farmer comes from the token, never from
// the form.
//
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Product name"
// @Param        description  formData  string  false  "Description"
// @Param        price        formData  number  true   "Price, must be positive"
// @Param        image        formData  file    false  "Product image (jpg/jpeg/png/gif)"
// @Success      201  {object}  domain.Product
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	farmer, err := requesterUsername(c)
	if err != nil {
		return err
	}

	price, err := parsePrice(c.FormValue("price"), true)
	if err != nil {
		return respondError(c, err)
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return respondError(c, err)
	}
	defer closeImage()

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Farmer:      farmer,
		Image:       image,
	})
	if err != nil {
		return respondError(c, err)
	}

	metrics.ProductsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /products/:id. Empty form fields keep their previous
// values (partial merge); a new image replaces the old one.
//
// @Summary      Update a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      int     true   "Product id"
// @Param        name         formData  string  false  "Product name"
// @Param        description  formData  string  false  "Description"
// @Param        price        formData  number  false  "Price, must be positive"
// @Param        image        formData  file    false  "Replacement image"
// @Success      200  {object}  domain.Product
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	farmer, err := requesterUsername(c)
	if err != nil {
		return err
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	in := ports.UpdateProductInput{ID: id, Requester: farmer}
	if v := c.FormValue("name"); v != "" {
		in.Name = &v
	}
	if v := c.FormValue("description"); v != "" {
		in.Description = &v
	}
	if v := c.FormValue("price"); v != "" {
		price, err := parsePrice(v, false)
		if err != nil {
			return respondError(c, err)
		}
		in.Price = &price
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return respondError(c, err)
	}
	defer closeImage()
	in.Image = image

	product, err := h.service.Update(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products/:id. The stored image is released
// best-effort after the row is gone.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Product id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	farmer, err := requesterUsername(c)
	if err != nil {
		return err
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.Delete(c.Request().Context(), id, farmer); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError("id must be a positive integer")
	}
	return uint(id), nil
}

func parsePrice(raw string, required bool) (float64, error) {
	if raw == "" {
		if required {
			return 0, domain.NewValidationError("price is required")
		}
		return 0, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.NewValidationError("price must be a number")
	}
	return price, nil
}

// formImage extracts the optional image file from the multipart form. The
// returned close func is always safe to defer.
func formImage(c echo.Context) (*ports.ImageUpload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile("image")
	if err != nil {
		// no file attached is fine
		return nil, noop, nil
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedImageExts[ext]; !ok {
		return nil, noop, domain.NewValidationError("only image files can be uploaded (jpg, jpeg, png, gif)")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}

	return &ports.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      src,
	}, func() { _ = src.Close() }, nil
}
