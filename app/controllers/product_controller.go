package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/realtime"
)

// productStatusFilter normalizes the status query param; ALL means no
// filter.
func productStatusFilter(c *fiber.Ctx) string {
	status := strings.ToUpper(c.Query("status"))
	if status == "ALL" {
		return ""
	}
	return status
}

// HandlePublicProducts is the unauthenticated product list consumed by
// automation pipelines.
func HandlePublicProducts(c *fiber.Ctx) error {
	page, limit, offset := parsePagination(c, 100)
	status := productStatusFilter(c)

	repo := repository.GetGlobalFactory().GetProductRepository()
	products, err := repo.List(status, "", offset, limit)
	if err != nil {
		return serverError(c, "Error fetching products", err)
	}
	total, err := repo.Count(status, "")
	if err != nil {
		return serverError(c, "Error fetching products", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       products,
		"pagination": paginationMap(page, limit, total),
	})
}

// HandleListProducts is the authenticated product list with text search
// over name, brand and product code.
func HandleListProducts(c *fiber.Ctx) error {
	page, limit, offset := parsePagination(c, 50)
	status := productStatusFilter(c)
	search := c.Query("search")

	repo := repository.GetGlobalFactory().GetProductRepository()
	products, err := repo.List(status, search, offset, limit)
	if err != nil {
		return serverError(c, "Error fetching products", err)
	}
	total, err := repo.Count(status, search)
	if err != nil {
		return serverError(c, "Error fetching products", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       products,
		"pagination": paginationMap(page, limit, total),
	})
}

// HandleProductStats returns catalog totals plus the stock value of active
// products (final price times quantity).
func HandleProductStats(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetProductRepository()

	total, err := repo.Count("", "")
	if err != nil {
		return serverError(c, "Error fetching product statistics", err)
	}
	active, err := repo.CountByStatus(models.PRODUCT_ACTIVE)
	if err != nil {
		return serverError(c, "Error fetching product statistics", err)
	}
	inactive, err := repo.CountByStatus(models.PRODUCT_INACTIVE)
	if err != nil {
		return serverError(c, "Error fetching product statistics", err)
	}
	outOfStock, err := repo.CountByStatus(models.PRODUCT_OUT_OF_STOCK)
	if err != nil {
		return serverError(c, "Error fetching product statistics", err)
	}
	stockValue, err := repo.ActiveStockValue()
	if err != nil {
		return serverError(c, "Error fetching product statistics", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalProducts":      total,
			"activeProducts":     active,
			"inactiveProducts":   inactive,
			"outOfStockProducts": outOfStock,
			"totalStockValue":    stockValue,
		},
	})
}

// ProductRequest is the body of product create and update calls. Pointer
// fields distinguish absent from zero on update.
type ProductRequest struct {
	ProductName      string   `json:"productName"`
	BrandName        string   `json:"brandName"`
	ShortDescription string   `json:"shortDescription"`
	Price            *float64 `json:"price"`
	Discount         *float64 `json:"discount"`
	StockQuantity    *int     `json:"stockQuantity"`
	ProductCode      string   `json:"productCode"`
	Status           string   `json:"status"`
}

// HandleCreateProduct adds a catalog entry. Product codes are unique; a
// duplicate answers 409.
func HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.ProductName == "" || req.Price == nil || req.ProductCode == "" || req.StockQuantity == nil {
		return badRequest(c, "Product name, price, product code, and stock quantity are required")
	}

	repo := repository.GetGlobalFactory().GetProductRepository()

	existing, err := repo.GetByCode(req.ProductCode)
	if err != nil {
		return serverError(c, "Error creating product", err)
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Product code already exists. Please use a unique product code.",
		})
	}

	discount := 0.0
	if req.Discount != nil {
		discount = *req.Discount
	}
	status := strings.ToUpper(req.Status)
	if status == "" {
		status = models.PRODUCT_ACTIVE
	}

	product := &models.Product{
		ProductName:      req.ProductName,
		BrandName:        req.BrandName,
		ShortDescription: req.ShortDescription,
		Price:            *req.Price,
		Discount:         discount,
		StockQuantity:    *req.StockQuantity,
		ProductCode:      req.ProductCode,
		Status:           status,
	}
	if err := product.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repo.Create(product); err != nil {
		return serverError(c, "Error creating product", err)
	}

	logActivity(c, "PRODUCT_CREATED", map[string]interface{}{
		"product_id":   product.ID,
		"product_code": product.ProductCode,
	})

	realtime.Broadcast(realtime.EventProductCreated, map[string]interface{}{
		"id":          product.ID,
		"productName": product.ProductName,
		"productCode": product.ProductCode,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

// HandleUpdateProduct applies partial updates. The final price is
// recomputed in the model's BeforeSave hook whenever price or discount
// change.
func HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Invalid product id")
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	product, err := repo.GetByID(uint(id))
	if err != nil {
		return serverError(c, "Error updating product", err)
	}
	if product == nil {
		return notFound(c, "Product not found")
	}

	if req.ProductName != "" {
		product.ProductName = req.ProductName
	}
	if req.BrandName != "" {
		product.BrandName = req.BrandName
	}
	if req.ShortDescription != "" {
		product.ShortDescription = req.ShortDescription
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.ProductCode != "" {
		product.ProductCode = req.ProductCode
	}
	if req.Status != "" {
		product.Status = strings.ToUpper(req.Status)
	}

	if err := product.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Update(product); err != nil {
		return serverError(c, "Error updating product", err)
	}

	logActivity(c, "PRODUCT_UPDATED", map[string]interface{}{
		"product_id":   product.ID,
		"product_code": product.ProductCode,
	})

	realtime.Broadcast(realtime.EventProductUpdated, map[string]interface{}{
		"id":          product.ID,
		"productName": product.ProductName,
		"status":      product.Status,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

// HandleDeleteProduct removes a catalog entry.
func HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Invalid product id")
	}

	repo := repository.GetGlobalFactory().GetProductRepository()
	product, err := repo.GetByID(uint(id))
	if err != nil {
		return serverError(c, "Error deleting product", err)
	}
	if product == nil {
		return notFound(c, "Product not found")
	}

	if err := repo.Delete(uint(id)); err != nil {
		return serverError(c, "Error deleting product", err)
	}

	logActivity(c, "PRODUCT_DELETED", map[string]interface{}{
		"product_id":   id,
		"product_code": product.ProductCode,
	})

	realtime.Broadcast(realtime.EventProductDeleted, map[string]interface{}{
		"id": id,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// HandleGetProduct returns one catalog entry.
func HandleGetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Invalid product id")
	}

	product, err := repository.GetGlobalFactory().GetProductRepository().GetByID(uint(id))
	if err != nil {
		return serverError(c, "Error fetching product", err)
	}
	if product == nil {
		return notFound(c, "Product not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}
