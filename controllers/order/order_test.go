package orderControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ahmedabd2lkarim/IKEA-API/middleware"
	"github.com/ahmedabd2lkarim/IKEA-API/models"
	"github.com/ahmedabd2lkarim/IKEA-API/payment"
)

type fakeGateway struct {
	refunds   []string
	refundErr error
}

func (f *fakeGateway) CreateCheckoutSession(payment.SessionParams) (*payment.Session, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGateway) CreateRefund(paymentIntent string) error {
	if f.refundErr != nil {
		return f.refundErr
	}
	f.refunds = append(f.refunds, paymentIntent)
	return nil
}

func (f *fakeGateway) ConstructEvent([]byte, string) (*payment.Event, error) {
	return nil, errors.New("not implemented")
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Variant{},
		&models.Cart{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{},
	))
	return db
}

func newOrderRouter(db *gorm.DB, gw payment.Gateway, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxRole, role)
	})
	r.GET("/admin/orders", GetAllOrders(db))
	r.PUT("/admin/orders/:id/status", UpdateOrderStatus(db))
	r.GET("/vendor/orders", GetOrdersByVendor(db))
	r.GET("/user/orders", GetUserOrders(db))
	r.POST("/user/orders", CreateOrder(db))
	r.GET("/user/orders/:id", GetOrderByID(db))
	r.POST("/user/orders/:id/cancel", CancelOrder(db, gw))
	return r
}

func seedOrder(t *testing.T, db *gorm.DB, userID string, status models.OrderStatus, paymentID string, items ...models.OrderItem) models.Order {
	t.Helper()
	order := models.Order{
		OrderRef:      GenerateOrderRef(),
		UserID:        userID,
		Items:         items,
		Total:         45,
		PaymentStatus: models.PaymentStatusPaid,
		PaymentID:     paymentID,
		Status:        status,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func cancelReq(r *gin.Engine, orderID uint) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/user/orders/"+strconv.Itoa(int(orderID))+"/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCancelOrder_RestoresStockAndRefunds(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{Name: "Lamp", Price: models.Price{Currency: "EGP", CurrentPrice: 10},
		VendorID: "v1", CategoryID: 1, StockQuantity: 3, InStock: true}
	require.NoError(t, db.Create(&product).Error)
	variantOwner := models.Product{Name: "Desk", Price: models.Price{Currency: "EGP", CurrentPrice: 90},
		VendorID: "v1", CategoryID: 1, StockQuantity: 7, InStock: true}
	require.NoError(t, db.Create(&variantOwner).Error)
	variant := models.Variant{ProductID: variantOwner.ID, Name: "Oak",
		Price: models.Price{Currency: "EGP", CurrentPrice: 25}, StockQuantity: 3, InStock: true}
	require.NoError(t, db.Create(&variant).Error)

	order := seedOrder(t, db, "u1", models.OrderStatusProcessing, "pi_1",
		models.OrderItem{ProductID: product.ID, Quantity: 2},
		models.OrderItem{ProductID: variantOwner.ID, VariantID: &variant.ID, Quantity: 1},
	)

	gw := &fakeGateway{}
	r := newOrderRouter(db, gw, "u1", models.RoleUser)

	w := cancelReq(r, order.ID)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"pi_1"}, gw.refunds)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)

	var gotProduct models.Product
	require.NoError(t, db.First(&gotProduct, product.ID).Error)
	assert.Equal(t, 5, gotProduct.StockQuantity)
	var gotVariant models.Variant
	require.NoError(t, db.First(&gotVariant, variant.ID).Error)
	assert.Equal(t, 4, gotVariant.StockQuantity)
	var gotOwner models.Product
	require.NoError(t, db.First(&gotOwner, variantOwner.ID).Error)
	assert.Equal(t, 7, gotOwner.StockQuantity)
}

func TestCancelOrder_RefundFailureAborts(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{Name: "Lamp", Price: models.Price{Currency: "EGP", CurrentPrice: 10},
		VendorID: "v1", CategoryID: 1, StockQuantity: 3, InStock: true}
	require.NoError(t, db.Create(&product).Error)

	order := seedOrder(t, db, "u1", models.OrderStatusProcessing, "pi_1",
		models.OrderItem{ProductID: product.ID, Quantity: 2})

	gw := &fakeGateway{refundErr: errors.New("refund rejected")}
	r := newOrderRouter(db, gw, "u1", models.RoleUser)

	w := cancelReq(r, order.ID)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusProcessing, got.Status)

	var gotProduct models.Product
	require.NoError(t, db.First(&gotProduct, product.ID).Error)
	assert.Equal(t, 3, gotProduct.StockQuantity)
}

func TestCancelOrder_TerminalStatesRejected(t *testing.T) {
	db := setupTestDB(t)
	gw := &fakeGateway{}
	r := newOrderRouter(db, gw, "u1", models.RoleUser)

	for _, status := range []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusCancelled} {
		order := seedOrder(t, db, "u1", status, "pi_1")
		w := cancelReq(r, order.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code, "status %s", status)

		var got models.Order
		require.NoError(t, db.First(&got, order.ID).Error)
		assert.Equal(t, status, got.Status)
	}
	assert.Empty(t, gw.refunds)
}

func TestCancelOrder_NoPaymentReferenceSkipsRefund(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{Name: "Lamp", Price: models.Price{Currency: "EGP", CurrentPrice: 10},
		VendorID: "v1", CategoryID: 1, StockQuantity: 3, InStock: true}
	require.NoError(t, db.Create(&product).Error)
	order := seedOrder(t, db, "u1", models.OrderStatusPending, "",
		models.OrderItem{ProductID: product.ID, Quantity: 1})

	gw := &fakeGateway{refundErr: errors.New("should not be called")}
	r := newOrderRouter(db, gw, "u1", models.RoleUser)

	w := cancelReq(r, order.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)
}

func TestCancelOrder_NonOwnerGetsNotFound(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "u1", models.OrderStatusProcessing, "pi_1")

	r := newOrderRouter(db, &fakeGateway{}, "u2", models.RoleUser)
	w := cancelReq(r, order.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatus_AdminBypassesTransitionGraph(t *testing.T) {
	db := setupTestDB(t)
	// Admin may overwrite even a terminal status; only the enum is validated.
	order := seedOrder(t, db, "u1", models.OrderStatusDelivered, "pi_1")
	r := newOrderRouter(db, &fakeGateway{}, "admin-1", models.RoleAdmin)

	body, _ := json.Marshal(UpdateOrderStatusRequest{Status: "shipped"})
	req := httptest.NewRequest(http.MethodPut, "/admin/orders/"+strconv.Itoa(int(order.ID))+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, got.Status)
}

func TestUpdateOrderStatus_RejectsUnknownEnum(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "u1", models.OrderStatusProcessing, "pi_1")
	r := newOrderRouter(db, &fakeGateway{}, "admin-1", models.RoleAdmin)

	body, _ := json.Marshal(UpdateOrderStatusRequest{Status: "teleported"})
	req := httptest.NewRequest(http.MethodPut, "/admin/orders/"+strconv.Itoa(int(order.ID))+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder_FromCartAndClearsIt(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{Name: "Lamp", Price: models.Price{Currency: "EGP", CurrentPrice: 10},
		VendorID: "v1", CategoryID: 1, StockQuantity: 3, InStock: true}
	require.NoError(t, db.Create(&product).Error)
	cart := models.Cart{UserID: "u1", Total: 20, Items: []models.CartItem{
		{ProductID: product.ID, Quantity: 2},
	}}
	require.NoError(t, db.Create(&cart).Error)

	r := newOrderRouter(db, &fakeGateway{}, "u1", models.RoleUser)
	body, _ := json.Marshal(map[string]interface{}{
		"shipping_address": "12 Nile St",
		"payment_info":     map[string]string{"id": "pi_direct"},
	})
	req := httptest.NewRequest(http.MethodPost, "/user/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, db.Preload("Items").Where("user_id = ?", "u1").First(&order).Error)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "pi_direct", order.PaymentID)
	assert.Equal(t, 20.0, order.Total)

	err := db.Where("user_id = ?", "u1").First(&models.Cart{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	db := setupTestDB(t)
	r := newOrderRouter(db, &fakeGateway{}, "u1", models.RoleUser)

	body, _ := json.Marshal(map[string]interface{}{"shipping_address": "12 Nile St"})
	req := httptest.NewRequest(http.MethodPost, "/user/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrdersByVendor_FiltersItemsAndRecomputesSubtotal(t *testing.T) {
	db := setupTestDB(t)
	mine := models.Product{Name: "Lamp", Price: models.Price{Currency: "EGP", CurrentPrice: 10},
		VendorID: "vendor-1", CategoryID: 1}
	require.NoError(t, db.Create(&mine).Error)
	theirs := models.Product{Name: "Rug", Price: models.Price{Currency: "EGP", CurrentPrice: 50},
		VendorID: "vendor-2", CategoryID: 1}
	require.NoError(t, db.Create(&theirs).Error)

	seedOrder(t, db, "u1", models.OrderStatusProcessing, "pi_1",
		models.OrderItem{ProductID: mine.ID, Quantity: 2},
		models.OrderItem{ProductID: theirs.ID, Quantity: 1},
	)
	// An order with none of vendor-1's products must not appear.
	seedOrder(t, db, "u2", models.OrderStatusProcessing, "pi_2",
		models.OrderItem{ProductID: theirs.ID, Quantity: 3},
	)

	r := newOrderRouter(db, &fakeGateway{}, "vendor-1", models.RoleVendor)
	req := httptest.NewRequest(http.MethodGet, "/vendor/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var views []struct {
		Items []models.OrderItem `json:"order_items"`
		Total float64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	require.Len(t, views[0].Items, 1)
	assert.Equal(t, mine.ID, views[0].Items[0].ProductID)
	assert.Equal(t, 20.0, views[0].Total)
}

func TestGetOrderByID_OwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "u1", models.OrderStatusProcessing, "pi_1")

	r := newOrderRouter(db, &fakeGateway{}, "u2", models.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/user/orders/"+strconv.Itoa(int(order.ID)), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
