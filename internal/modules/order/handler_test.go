package order

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(repo *mockRepo) *chi.Mux {
	r := chi.NewRouter()
	NewHandler(newTestService(repo, nil)).RegisterRoutes(r)
	return r
}

func postCheckout(t *testing.T, router http.Handler, req CheckoutRequest) (*httptest.ResponseRecorder, CheckoutResponse) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body))
	httpReq.Header.Set("X-Forwarded-For", "103.4.145.1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)

	var resp CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandler_Checkout_Created(t *testing.T) {
	repo := newMockRepo()
	brandID := repo.addBrand("B", "b")
	productID := repo.addProduct(ProductSnapshot{Name: "P", UnitPrice: 100}, 5)
	router := newTestServer(repo)

	rec, resp := postCheckout(t, router, checkoutReq(brandID, productID))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	_, err := uuid.Parse(resp.OrderID)
	assert.NoError(t, err, "response carries the new order id")
}

func TestHandler_Checkout_InvalidPhoneIs400(t *testing.T) {
	repo := newMockRepo()
	brandID := repo.addBrand("B", "b")
	productID := repo.addProduct(ProductSnapshot{Name: "P", UnitPrice: 100}, 5)
	router := newTestServer(repo)

	req := checkoutReq(brandID, productID)
	req.Customer.Phone = "123456"
	rec, resp := postCheckout(t, router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "mobile number", "error names the phone problem")
}

func TestHandler_Checkout_StaleCartIs422(t *testing.T) {
	repo := newMockRepo()
	brandID := repo.addBrand("B", "b")
	router := newTestServer(repo)

	req := checkoutReq(brandID, uuid.New())
	rec, resp := postCheckout(t, router, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, resp.Error, "refresh your cart")
}

func TestHandler_Checkout_MissingBrandIs500(t *testing.T) {
	repo := newMockRepo()
	productID := repo.addProduct(ProductSnapshot{Name: "P", UnitPrice: 100}, 5)
	router := newTestServer(repo)

	rec, _ := postCheckout(t, router, checkoutReq(uuid.New(), productID))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_Checkout_MalformedBody(t *testing.T) {
	router := newTestServer(newMockRepo())

	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateStatus(t *testing.T) {
	repo := newMockRepo()
	brandID := repo.addBrand("B", "b")
	productID := repo.addProduct(ProductSnapshot{Name: "P", UnitPrice: 100}, 5)
	router := newTestServer(repo)

	_, resp := postCheckout(t, router, checkoutReq(brandID, productID))
	require.True(t, resp.Success)

	body := bytes.NewReader([]byte(`{"status":"PROCESSING"}`))
	httpReq := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+resp.OrderID+"/status", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Invalid transition surfaces as 422.
	body = bytes.NewReader([]byte(`{"status":"PENDING"}`))
	httpReq = httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+resp.OrderID+"/status", body)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandler_ListOrders_RequiresBrand(t *testing.T) {
	router := newTestServer(newMockRepo())

	httpReq := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Stats(t *testing.T) {
	repo := newMockRepo()
	brandID := repo.addBrand("B", "b")
	productID := repo.addProduct(ProductSnapshot{Name: "P", UnitPrice: 100}, 5)
	router := newTestServer(repo)

	_, resp := postCheckout(t, router, checkoutReq(brandID, productID))
	require.True(t, resp.Success)

	httpReq := httptest.NewRequest(http.MethodGet, "/api/v1/stats?brand_id="+brandID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats BrandStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalOrders)
}
