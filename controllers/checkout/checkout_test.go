package checkoutControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
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
	lastParams payment.SessionParams
	session    *payment.Session
	err        error
}

func (f *fakeGateway) CreateCheckoutSession(params payment.SessionParams) (*payment.Session, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeGateway) CreateRefund(string) error { return nil }

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
		&models.Product{}, &models.Variant{}, &models.Cart{}, &models.CartItem{},
	))
	return db
}

func newCheckoutRouter(db *gorm.DB, gw payment.Gateway, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxRole, models.RoleUser)
	})
	r.POST("/user/checkout/session", CreateCheckoutSession(db, gw, "https://shop.example"))
	return r
}

func postSession(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(CheckoutInput{
		Address: "12 Nile St, Cairo",
		Email:   "buyer@example.com",
		Mobile:  "+201000000000",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/user/checkout/session", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// The §2/§8 scenario: productA qty 2 @10 plus variantB of productC qty 1 @25
// becomes [{A, 1000, 2}, {"C - variant", 2500, 1}].
func TestCreateCheckoutSession_LineItems(t *testing.T) {
	db := setupTestDB(t)

	productA := models.Product{Name: "Lamp", Price: models.Price{Currency: "EGP", CurrentPrice: 10},
		VendorID: "v1", CategoryID: 1}
	require.NoError(t, db.Create(&productA).Error)

	productC := models.Product{Name: "Desk", Price: models.Price{Currency: "EGP", CurrentPrice: 90},
		VendorID: "v1", CategoryID: 1}
	require.NoError(t, db.Create(&productC).Error)
	variantB := models.Variant{ProductID: productC.ID, Name: "Oak",
		Price: models.Price{Currency: "EGP", CurrentPrice: 25}}
	require.NoError(t, db.Create(&variantB).Error)

	cart := models.Cart{UserID: "u1", Total: 45, Items: []models.CartItem{
		{ProductID: productA.ID, Quantity: 2},
		{ProductID: productC.ID, VariantID: &variantB.ID, Quantity: 1},
	}}
	require.NoError(t, db.Create(&cart).Error)

	gw := &fakeGateway{session: &payment.Session{ID: "cs_1", URL: "https://pay.example/cs_1"}}
	r := newCheckoutRouter(db, gw, "u1")

	w := postSession(t, r)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://pay.example/cs_1", resp["sessionURL"])

	require.Len(t, gw.lastParams.LineItems, 2)
	assert.Equal(t, "Lamp", gw.lastParams.LineItems[0].Name)
	assert.Equal(t, int64(1000), gw.lastParams.LineItems[0].UnitAmount)
	assert.Equal(t, 2, gw.lastParams.LineItems[0].Quantity)
	assert.Equal(t, "Desk - Oak", gw.lastParams.LineItems[1].Name)
	assert.Equal(t, int64(2500), gw.lastParams.LineItems[1].UnitAmount)
	assert.Equal(t, 1, gw.lastParams.LineItems[1].Quantity)

	assert.Equal(t, "u1", gw.lastParams.Metadata["userId"])
	assert.Equal(t, "12 Nile St, Cairo", gw.lastParams.Metadata["address"])
}

func TestCreateCheckoutSession_EmptyCart(t *testing.T) {
	db := setupTestDB(t)
	gw := &fakeGateway{session: &payment.Session{URL: "https://pay.example"}}
	r := newCheckoutRouter(db, gw, "u1")

	w := postSession(t, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestCreateCheckoutSession_SkipsMissingProduct(t *testing.T) {
	db := setupTestDB(t)
	productA := models.Product{Name: "Lamp", Price: models.Price{Currency: "EGP", CurrentPrice: 10},
		VendorID: "v1", CategoryID: 1}
	require.NoError(t, db.Create(&productA).Error)

	cart := models.Cart{UserID: "u1", Items: []models.CartItem{
		{ProductID: productA.ID, Quantity: 1},
		{ProductID: 9999, Quantity: 4}, // dangling reference
	}}
	require.NoError(t, db.Create(&cart).Error)

	gw := &fakeGateway{session: &payment.Session{URL: "https://pay.example"}}
	r := newCheckoutRouter(db, gw, "u1")

	w := postSession(t, r)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, gw.lastParams.LineItems, 1)
	assert.Equal(t, "Lamp", gw.lastParams.LineItems[0].Name)
}

func TestCreateCheckoutSession_GatewayError(t *testing.T) {
	db := setupTestDB(t)
	productA := models.Product{Name: "Lamp", Price: models.Price{Currency: "EGP", CurrentPrice: 10},
		VendorID: "v1", CategoryID: 1}
	require.NoError(t, db.Create(&productA).Error)
	cart := models.Cart{UserID: "u1", Items: []models.CartItem{{ProductID: productA.ID, Quantity: 1}}}
	require.NoError(t, db.Create(&cart).Error)

	gw := &fakeGateway{err: errors.New("gateway down")}
	r := newCheckoutRouter(db, gw, "u1")

	w := postSession(t, r)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCreateCheckoutSession_VariantFallsBackToProduct(t *testing.T) {
	db := setupTestDB(t)
	product := models.Product{Name: "Desk", Price: models.Price{Currency: "EGP", CurrentPrice: 90},
		VendorID: "v1", CategoryID: 1}
	require.NoError(t, db.Create(&product).Error)

	missingVariant := uint(777)
	cart := models.Cart{UserID: "u1", Items: []models.CartItem{
		{ProductID: product.ID, VariantID: &missingVariant, Quantity: 1},
	}}
	require.NoError(t, db.Create(&cart).Error)

	gw := &fakeGateway{session: &payment.Session{URL: "https://pay.example"}}
	r := newCheckoutRouter(db, gw, "u1")

	w := postSession(t, r)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, gw.lastParams.LineItems, 1)
	assert.Equal(t, "Desk", gw.lastParams.LineItems[0].Name)
	assert.Equal(t, int64(9000), gw.lastParams.LineItems[0].UnitAmount)
}
