package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/realtime"
	"github.com/socialhubhq/socialhub/internal/pkg/webhook"
)

// orderRequiredFields in the order they are reported when missing.
var orderRequiredFields = []string{
	"name", "number", "address", "product_name",
	"total_product", "total_price", "sender_id", "recipient_id",
}

// parseNumeric converts a value that may arrive as JSON number or string.
func parseNumeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// HandleCreateOrder is the public ingress for order submissions.
func HandleCreateOrder(c *fiber.Ctx) error {
	payload := map[string]interface{}{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	log.Infof("[Order] Received order data from sender %v", payload["sender_id"])

	var missing []string
	for _, field := range orderRequiredFields {
		if v, ok := payload[field]; !ok || v == nil || strings.TrimSpace(fmt.Sprint(v)) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return badRequest(c, "Missing required fields: "+strings.Join(missing, ", "))
	}

	totalProduct, ok := parseNumeric(payload["total_product"])
	if !ok || totalProduct < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid total_product value. Must be a valid number greater than 0",
			"error":   "VALIDATION_ERROR",
			"details": fiber.Map{
				"field":    "total_product",
				"received": payload["total_product"],
				"expected": "A valid positive number (e.g., 1, 2, 3)",
			},
		})
	}

	totalPrice, ok := parseNumeric(payload["total_price"])
	if !ok || totalPrice < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid total_price value. Must be a valid number",
			"error":   "VALIDATION_ERROR",
			"details": fiber.Map{
				"field":    "total_price",
				"received": payload["total_price"],
				"expected": "A valid number (e.g., 100, 250.50)",
			},
		})
	}

	order := &models.Order{
		OrderID:      models.GenerateOrderID(),
		Name:         popString(payload, "name"),
		Number:       popString(payload, "number"),
		Address:      popString(payload, "address"),
		ProductName:  popString(payload, "product_name"),
		TotalProduct: int(totalProduct),
		TotalPrice:   totalPrice,
		Text:         popString(payload, "text"),
		SenderID:     popString(payload, "sender_id"),
		RecipientID:  popString(payload, "recipient_id"),
		Status:       models.ORDER_PENDING,
	}
	delete(payload, "total_product")
	delete(payload, "total_price")
	if len(payload) > 0 {
		order.Extra = payload
	}

	repo := repository.GetGlobalFactory().GetOrderRepository()
	if err := repo.Create(order); err != nil {
		return serverError(c, "Internal server error.", err)
	}

	log.Infof("[Order] New order created with ID %s (%s x%d, %.2f)",
		order.OrderID, order.ProductName, order.TotalProduct, order.TotalPrice)

	webhook.Trigger(models.WEBHOOK_ORDER, map[string]interface{}{
		"id":            order.ID,
		"order_id":      order.OrderID,
		"name":          order.Name,
		"number":        order.Number,
		"address":       order.Address,
		"product_name":  order.ProductName,
		"total_product": order.TotalProduct,
		"total_price":   order.TotalPrice,
		"text":          order.Text,
		"sender_id":     order.SenderID,
		"recipient_id":  order.RecipientID,
		"status":        order.Status,
		"webhook_type":  "ORDER_CREATED",
	})

	realtime.Broadcast(realtime.EventNewOrder, map[string]interface{}{
		"order_id":     order.OrderID,
		"product_name": order.ProductName,
		"status":       order.Status,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order created successfully",
		"data":    order,
	})
}

// HandleAllOrders lists orders newest first, optionally filtered by status.
func HandleAllOrders(c *fiber.Ctx) error {
	page, limit, offset := parsePagination(c, 50)

	status := strings.ToUpper(c.Query("status"))
	if status == "ALL" {
		status = ""
	}

	repo := repository.GetGlobalFactory().GetOrderRepository()
	orders, err := repo.List(status, offset, limit)
	if err != nil {
		return serverError(c, "Error fetching orders", err)
	}
	total, err := repo.Count(status)
	if err != nil {
		return serverError(c, "Error fetching orders", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      total,
		"data":       orders,
		"pagination": paginationMap(page, limit, total),
	})
}

// HandleOrderStats returns order totals broken down by status.
func HandleOrderStats(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetOrderRepository()

	total, err := repo.Count("")
	if err != nil {
		return serverError(c, "Error fetching order statistics", err)
	}
	byStatus, err := repo.CountsByStatus()
	if err != nil {
		return serverError(c, "Error fetching order statistics", err)
	}

	counts := map[string]int64{}
	for _, row := range byStatus {
		counts[row.Key] = row.Count
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalOrders":     total,
			"pendingOrders":   counts[models.ORDER_PENDING],
			"confirmedOrders": counts[models.ORDER_CONFIRMED],
			"deliveredOrders": counts[models.ORDER_DELIVERED],
			"cancelledOrders": counts[models.ORDER_CANCELLED],
		},
	})
}

// HandleGetOrder returns a single order by its external order id.
func HandleGetOrder(c *fiber.Ctx) error {
	orderID := c.Params("order_id")

	order, err := repository.GetGlobalFactory().GetOrderRepository().GetByOrderID(orderID)
	if err != nil {
		return serverError(c, "Error fetching order", err)
	}
	if order == nil {
		return notFound(c, "Order not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// HandleUpdateOrderStatus transitions an order through its lifecycle. A
// CANCELLED transition may carry a reason and a customer-facing message.
func HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("order_id")

	var body struct {
		Status  string `json:"status"`
		Reason  string `json:"reason"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	status := strings.ToUpper(body.Status)
	if !models.IsValidOrderStatus(status) {
		return badRequest(c, "Valid status is required (PENDING, CONFIRMED, DELIVERED, CANCELLED)")
	}

	repo := repository.GetGlobalFactory().GetOrderRepository()
	order, err := repo.GetByOrderID(orderID)
	if err != nil {
		return serverError(c, "Error updating order status", err)
	}
	if order == nil {
		return notFound(c, "Order not found")
	}

	previousStatus := order.Status
	order.Status = status
	if status == models.ORDER_CANCELLED {
		if body.Reason != "" {
			order.CancelReason = body.Reason
		}
		if body.Message != "" {
			order.CancelMessage = body.Message
		}
	}

	if err := repo.Update(order); err != nil {
		return serverError(c, "Error updating order status", err)
	}

	log.Infof("[Order] Order %s status updated from %s to %s", orderID, previousStatus, order.Status)

	logActivity(c, "UPDATE_ORDER_STATUS", map[string]interface{}{
		"order_id": orderID,
		"from":     previousStatus,
		"to":       order.Status,
	})

	webhook.Trigger(models.WEBHOOK_ORDER, map[string]interface{}{
		"id":            order.ID,
		"order_id":      order.OrderID,
		"name":          order.Name,
		"product_name":  order.ProductName,
		"total_product": order.TotalProduct,
		"total_price":   order.TotalPrice,
		"sender_id":     order.SenderID,
		"recipient_id":  order.RecipientID,
		"status":        order.Status,
		"webhook_type":  "ORDER_STATUS_UPDATED",
		"action":        "STATUS_UPDATE",
		"status_change": map[string]interface{}{
			"from":    previousStatus,
			"to":      order.Status,
			"reason":  body.Reason,
			"message": body.Message,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})

	realtime.Broadcast(realtime.EventOrderUpdated, map[string]interface{}{
		"order_id": order.OrderID,
		"status":   order.Status,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Order status updated to %s", order.Status),
		"data":    order,
	})
}

// HandleSenderOrders lists every order placed by a sender.
func HandleSenderOrders(c *fiber.Ctx) error {
	senderID := c.Params("sender_id")

	orders, err := repository.GetGlobalFactory().GetOrderRepository().ListBySender(senderID)
	if err != nil {
		return serverError(c, "Error fetching sender orders", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"data":    orders,
	})
}

// HandleRecipientOrders lists every order addressed to a recipient.
func HandleRecipientOrders(c *fiber.Ctx) error {
	recipientID := c.Params("recipient_id")

	orders, err := repository.GetGlobalFactory().GetOrderRepository().ListByRecipient(recipientID)
	if err != nil {
		return serverError(c, "Error fetching recipient orders", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"data":    orders,
	})
}

// HandleOrdersByStatus lists every order in the given state.
func HandleOrdersByStatus(c *fiber.Ctx) error {
	status := strings.ToUpper(c.Params("status"))
	if !models.IsValidOrderStatus(status) {
		return badRequest(c, "Valid status is required (PENDING, CONFIRMED, DELIVERED, CANCELLED)")
	}

	orders, err := repository.GetGlobalFactory().GetOrderRepository().Find(status, "", "", 0)
	if err != nil {
		return serverError(c, "Error fetching orders by status", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"data":    orders,
	})
}

// HandleFindOrders filters orders by status, sender and order id.
func HandleFindOrders(c *fiber.Ctx) error {
	status := strings.ToUpper(c.Query("status"))

	orders, err := repository.GetGlobalFactory().GetOrderRepository().
		Find(status, c.Query("sender_id"), c.Query("order_id"), 50)
	if err != nil {
		return serverError(c, "Error fetching orders", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"data":    orders,
	})
}
