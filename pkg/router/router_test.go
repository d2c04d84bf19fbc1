package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutesAndURL(t *testing.T) {
	r := New()
	r.Get("/menu", "menu.list", noop)
	r.Get("/menu/{id}", "menu.show", noop)

	path, ok := r.Path("menu.show")
	require.True(t, ok)
	assert.Equal(t, "/menu/{id}", path)

	url, err := r.URL("menu.show", map[string]string{"id": "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "/menu/abc123", url)

	_, err = r.URL("menu.show", nil)
	assert.Error(t, err, "unfilled params must not render")

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	api := r.Group("/api", tag("outer"))
	v1 := api.Group("/v1", tag("inner"))
	v1.Get("/ping", "ping", noop, tag("route"))

	path, ok := r.Path("ping")
	require.True(t, ok)
	assert.Equal(t, "/api/v1/ping", path)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner", "route"}, order)
}

func TestRoutesSnapshot(t *testing.T) {
	r := New()
	r.Get("/a", "a", noop)
	r.Post("/b", "b", noop)
	r.Get("/anon", "", noop)

	infos := r.Routes()
	require.Len(t, infos, 2, "unnamed routes are not recorded")
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, http.MethodPost, infos[1].Method)
}
