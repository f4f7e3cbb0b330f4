package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/indigo-retail/pos-api/internal/http/handler"
)

func newProductHandler() *handler.ProductHandler {
	return handler.NewProductHandler(nil, zap.NewNop())
}

func TestProductHandler_Create_InvalidBody(t *testing.T) {
	h := newProductHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	h := newProductHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"stock":5,"price":"1.00"}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name")
}

func TestProductHandler_Create_NegativeStock(t *testing.T) {
	h := newProductHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"Mouse","stock":-1,"price":"1.00"}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	h := newProductHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_Delete_InvalidID(t *testing.T) {
	h := newProductHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/products/abc", nil)
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
