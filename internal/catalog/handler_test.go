package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
)

func newTestRouter() (http.Handler, *mockRepo) {
	svc, repo := newTestService()
	h := NewHandler(svc, zap.NewNop().Sugar())
	r := chi.NewRouter()
	r.Get("/items", h.List)
	r.Get("/items/{id}", h.Get)
	r.Post("/items", h.Create)
	r.Put("/items/{id}", h.Update)
	r.Delete("/items/{id}", h.Delete)
	return r, repo
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateAcceptsNumericString(t *testing.T) {
	h, repo := newTestRouter()

	rec := do(t, h, http.MethodPost, "/items", `{"name":"Mug","price":"9.50"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var it entity.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &it))
	assert.Equal(t, 9.5, it.Price)
	assert.Equal(t, entity.DefaultCategory, it.Category)
	assert.Len(t, repo.items, 1)
}

func TestHandler_CreateRejectsBadPayloads(t *testing.T) {
	h, repo := newTestRouter()

	cases := map[string]string{
		"missing price": `{"name":"Mug"}`,
		"bad price":     `{"name":"Mug","price":"cheap"}`,
		"unknown field": `{"name":"Mug","price":1,"colour":"red"}`,
		"empty name":    `{"name":"","price":1}`,
		"not json":      `nope`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/items", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"message"`)
		})
	}
	assert.Empty(t, repo.items)
}

func TestHandler_ListQueryParams(t *testing.T) {
	h, _ := newTestRouter()
	do(t, h, http.MethodPost, "/items", `{"name":"A","price":10}`)
	do(t, h, http.MethodPost, "/items", `{"name":"B","price":20}`)

	rec := do(t, h, http.MethodGet, "/items?sort=price-descending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []entity.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Equal(t, []string{"B", "A"}, names(items))

	rec = do(t, h, http.MethodGet, "/items?min=15", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Equal(t, []string{"B"}, names(items))

	rec = do(t, h, http.MethodGet, "/items?max=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ListEmptyIsArray(t *testing.T) {
	h, _ := newTestRouter()

	rec := do(t, h, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_GetUpdateDelete(t *testing.T) {
	h, repo := newTestRouter()
	do(t, h, http.MethodPost, "/items", `{"name":"Mug","price":9.99,"category":"home"}`)
	id := repo.items[0].ID

	rec := do(t, h, http.MethodGet, "/items/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPut, "/items/"+id, `{"price":12,"description":"Large"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+id+`","name":"Mug","price":12,"category":"home","description":"Large"}`, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/items/missing", `{"price":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"not found"}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/items/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/items/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/items/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ListRejectsNonFinitePriceBounds(t *testing.T) {
	h, _ := newTestRouter()

	for _, q := range []string{"min=NaN", "max=Inf", "min=-Inf", "max=nan"} {
		rec := do(t, h, http.MethodGet, "/items?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}
