package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(NewDomainGroup("render", "/render")).
		Register(NewDomainGroup("templates", "/templates"))

	assert.Len(t, r.registrars, 2)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("render", "/render")
		assert.Equal(t, "render", g.Name())
		assert.Equal(t, "/render", g.Prefix())
	})

	t.Run("registers routes per method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		echo := func(method string) gin.HandlerFunc {
			return func(c *gin.Context) { c.String(http.StatusOK, method) }
		}
		g.GET("/items", echo("GET"))
		g.POST("/items", echo("POST"))
		g.PUT("/items/:id", echo("PUT"))
		g.DELETE("/items/:id", echo("DELETE"))

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		for _, tc := range []struct {
			method string
			path   string
		}{
			{"GET", "/api/v1/test/items"},
			{"POST", "/api/v1/test/items"},
			{"PUT", "/api/v1/test/items/1"},
			{"DELETE", "/api/v1/test/items/1"},
		} {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.method, w.Body.String())
		}
	})

	t.Run("group middleware runs before handlers", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Set("tag", "from-middleware")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString("tag"))
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/test/items", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "from-middleware", w.Body.String())
	})
}
