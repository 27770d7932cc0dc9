package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialhubhq/socialhub/app/repository"
)

func newOrderTestApp(t *testing.T, orders *fakeOrderRepo) *fiber.App {
	t.Helper()
	installFakeRepos(t, &repository.Repositories{Order: orders})

	app := fiber.New()
	app.Post("/api/create-order", HandleCreateOrder)
	return app
}

func TestHandleCreateOrderKeepsUnknownFieldsInExtra(t *testing.T) {
	orders := &fakeOrderRepo{}
	app := newOrderTestApp(t, orders)

	status, body := doJSON(t, app, "POST", "/api/create-order",
		`{"name":"Alice","number":"0812","address":"Main St 1","product_name":"Mug",
		  "total_product":2,"total_price":50,"sender_id":"s1","recipient_id":"r1",
		  "platform":"messenger","campaign":"summer"}`)

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Order created successfully", body["message"])

	require.Len(t, orders.rows, 1)
	saved := orders.rows[0]
	assert.Equal(t, "Mug", saved.ProductName)
	assert.Equal(t, 2, saved.TotalProduct)
	assert.Equal(t, 50.0, saved.TotalPrice)

	// Unknown payload fields survive in the Extra blob; the numeric fields
	// already lifted into columns do not reappear there.
	require.NotNil(t, saved.Extra)
	assert.Equal(t, "messenger", saved.Extra["platform"])
	assert.Equal(t, "summer", saved.Extra["campaign"])
	assert.NotContains(t, saved.Extra, "total_product")
	assert.NotContains(t, saved.Extra, "total_price")
}

func TestHandleCreateOrderWithoutExtras(t *testing.T) {
	orders := &fakeOrderRepo{}
	app := newOrderTestApp(t, orders)

	status, _ := doJSON(t, app, "POST", "/api/create-order",
		`{"name":"Bob","number":"0813","address":"Side St 2","product_name":"Cap",
		  "total_product":1,"total_price":10,"sender_id":"s2","recipient_id":"r2"}`)

	require.Equal(t, fiber.StatusCreated, status)
	require.Len(t, orders.rows, 1)
	assert.Nil(t, orders.rows[0].Extra)
}

func TestHandleCreateOrderRejectsInvalidTotalProduct(t *testing.T) {
	app := newOrderTestApp(t, &fakeOrderRepo{})

	status, body := doJSON(t, app, "POST", "/api/create-order",
		`{"name":"Alice","number":"0812","address":"Main St 1","product_name":"Mug",
		  "total_product":"zero","total_price":50,"sender_id":"s1","recipient_id":"r1"}`)

	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "VALIDATION_ERROR", body["error"])

	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "total_product", details["field"])
}
