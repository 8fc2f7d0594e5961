package product

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/review-monitor/core/internal/models"
	"github.com/review-monitor/core/internal/storage"
)

func newTestRouter(t *testing.T) (*gin.Engine, *storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	r := gin.New()
	NewHandler(store).RegisterRoutes(r.Group("/api"))
	return r, store
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(r *gin.Engine, method, url, body string) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestListProductsEmpty(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(r, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "[]", string(env.Data))
}

func TestCreateProduct(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(r, http.MethodPost, "/api/products",
		`{"product_url": "https://example.com/p/1", "name": "测试商品"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var p models.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "https://example.com/p/1", p.ProductURL)
	require.NotNil(t, p.Name)
	assert.Equal(t, "测试商品", *p.Name)
	assert.NotEmpty(t, p.CreatedAt)
}

func TestCreateProductRequiresURL(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []string{"", "{}", `{"product_url": "  "}`, `{"name": "x"}`} {
		w, env := doJSON(r, http.MethodPost, "/api/products", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Error, "product_url")
	}
}

func TestCreateProductDuplicate(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doJSON(r, http.MethodPost, "/api/products", `{"product_url": "https://example.com/p/dup"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(r, http.MethodPost, "/api/products", `{"product_url": "https://example.com/p/dup"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "商品链接已存在", env.Error)
}

func TestGetProduct(t *testing.T) {
	r, store := newTestRouter(t)
	name := "P2"
	id, err := store.AddProduct("https://example.com/p/2", &name)
	require.NoError(t, err)

	w, env := doJSON(r, http.MethodGet, fmt.Sprintf("/api/products/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	var p models.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "P2", *p.Name)

	w, env = doJSON(r, http.MethodGet, "/api/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", env.Error)

	w, env = doJSON(r, http.MethodGet, "/api/products/99999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", env.Error)
}

func TestDeleteProduct(t *testing.T) {
	r, store := newTestRouter(t)
	id, err := store.AddProduct("https://example.com/p/del", nil)
	require.NoError(t, err)

	w, env := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	gone, err := store.GetProduct(id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Idempotent: deleting an absent product still succeeds.
	w, env = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}
