package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"checkout-service/internal/services"
	"checkout-service/pkg/common"
)

type ProductHandler struct {
	Products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{Products: products}
}

func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.Products.FindAll(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch products", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid product id", nil, http.StatusBadRequest))
		return
	}

	product, err := h.Products.FindOne(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Product not found", nil, http.StatusNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch product", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(product, "success"))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var dto services.CreateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	product, err := h.Products.Create(dto)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to create product", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(product, "Product created"))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid product id", nil, http.StatusBadRequest))
		return
	}

	var dto services.UpdateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	product, err := h.Products.Update(uint(id), dto)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Product not found", nil, http.StatusNotFound))
			return
		}
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(product, "Product updated"))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid product id", nil, http.StatusBadRequest))
		return
	}

	if err := h.Products.Remove(uint(id)); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Product not found", nil, http.StatusNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to delete product", nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Product removed"))
}
