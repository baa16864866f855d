package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"distrobill/internal/domain"
	"distrobill/internal/handler"
	"distrobill/mocks"
)

func newResourceHandler() (*handler.ResourceHandler, *mocks.MockResourceService) {
	mockSvc := new(mocks.MockResourceService)
	return handler.NewResourceHandler(mockSvc), mockSvc
}

func TestResourceHandler_List_Paginates(t *testing.T) {
	h, mockSvc := newResourceHandler()
	records := []domain.Record{
		{ID: uuid.New(), Resource: domain.ResourceProducts, Data: json.RawMessage(`{"name":"Paracetamol"}`)},
	}
	mockSvc.On("List", mock.Anything, "products", 40, 20).Return(records, 41, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/resources/products?offset=40&limit=500", http.NoBody)
	c.Params = gin.Params{{Key: "resource", Value: "products"}}

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, handler.PagMeta{Total: 41, Offset: 40, Limit: 20}, *resp.Meta)
	assert.Len(t, resp.Data, 1)
	mockSvc.AssertExpectations(t)
}

func TestResourceHandler_List_EmptyIsArray(t *testing.T) {
	h, mockSvc := newResourceHandler()
	mockSvc.On("List", mock.Anything, "payments", 0, 20).Return(nil, 0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/resources/payments", http.NoBody)
	c.Params = gin.Params{{Key: "resource", Value: "payments"}}

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestResourceHandler_List_UnknownResource(t *testing.T) {
	h, mockSvc := newResourceHandler()
	mockSvc.On("List", mock.Anything, "widgets", 0, 20).Return(nil, 0, fmt.Errorf("%w: widgets", domain.ErrUnknownResource))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/resources/widgets", http.NoBody)
	c.Params = gin.Params{{Key: "resource", Value: "widgets"}}

	h.List(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "UNKNOWN_RESOURCE", decodeResponse(t, w).Error.Code)
}

func TestResourceHandler_Get(t *testing.T) {
	h, mockSvc := newResourceHandler()
	id := uuid.New()
	rec := &domain.Record{ID: id, Resource: domain.ResourceCustomers, Data: json.RawMessage(`{"name":"Sharma Medicals"}`)}
	mockSvc.On("Get", mock.Anything, "customers", id).Return(rec, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", http.NoBody)
	c.Params = gin.Params{{Key: "resource", Value: "customers"}, {Key: "id", Value: id.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sharma Medicals")
}

func TestResourceHandler_Get_InvalidID(t *testing.T) {
	h, mockSvc := newResourceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", http.NoBody)
	c.Params = gin.Params{{Key: "resource", Value: "customers"}, {Key: "id", Value: "42"}}

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestResourceHandler_Create_PassesRawBody(t *testing.T) {
	h, mockSvc := newResourceHandler()
	body := `{"challan_no":"CH-1","batch_info":"[]"}`
	created := &domain.Record{ID: uuid.New(), Resource: domain.ResourceChallans, Data: json.RawMessage(body)}
	mockSvc.On("Create", mock.Anything, "challans", json.RawMessage(body)).Return(created, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Params = gin.Params{{Key: "resource", Value: "challans"}}

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestResourceHandler_Create_Errors(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"not an object":  {domain.ErrInvalidRecord, http.StatusBadRequest},
		"read only":      {domain.ErrReadOnlyResource, http.StatusMethodNotAllowed},
		"bad batch info": {fmt.Errorf("%w: line 0", domain.ErrInvalidBatchInfo), http.StatusUnprocessableEntity},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h, mockSvc := newResourceHandler()
			mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`[]`))
			c.Params = gin.Params{{Key: "resource", Value: "challans"}}

			h.Create(c)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestResourceHandler_Update(t *testing.T) {
	h, mockSvc := newResourceHandler()
	id := uuid.New()
	body := `{"name":"Renamed"}`
	mockSvc.On("Update", mock.Anything, "products", id, json.RawMessage(body)).
		Return(&domain.Record{ID: id, Resource: domain.ResourceProducts, Data: json.RawMessage(body)}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/", bytes.NewBufferString(body))
	c.Params = gin.Params{{Key: "resource", Value: "products"}, {Key: "id", Value: id.String()}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestResourceHandler_Delete(t *testing.T) {
	h, mockSvc := newResourceHandler()
	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, "expenses", id).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/", http.NoBody)
	c.Params = gin.Params{{Key: "resource", Value: "expenses"}, {Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "record deleted")
}

func TestResourceHandler_Delete_NotFound(t *testing.T) {
	h, mockSvc := newResourceHandler()
	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, "expenses", id).Return(domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/", http.NoBody)
	c.Params = gin.Params{{Key: "resource", Value: "expenses"}, {Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
