package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgen/backend/internal/infrastructure/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func resolveActor(t *testing.T, headers map[string]string) *auth.Actor {
	t.Helper()

	var actor *auth.Actor
	engine := gin.New()
	engine.Use(Actor())
	engine.GET("/", func(c *gin.Context) {
		actor = GetActor(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, actor)
	return actor
}

func TestActorMiddleware(t *testing.T) {
	t.Run("resolves user id and scopes from headers", func(t *testing.T) {
		userID := uuid.New()
		actor := resolveActor(t, map[string]string{
			"X-User-ID":     userID.String(),
			"X-Data-Scopes": `{"Contact":"OWN","Template":"ALL","Lead":"NONE"}`,
		})

		assert.Equal(t, userID, actor.UserID)
		assert.Equal(t, auth.ScopeOwn, actor.ScopeFor("Contact"))
		assert.Equal(t, auth.ScopeAll, actor.ScopeFor("Template"))
		assert.Equal(t, auth.ScopeNone, actor.ScopeFor("Lead"))
	})

	t.Run("missing headers yield an anonymous actor", func(t *testing.T) {
		actor := resolveActor(t, nil)

		assert.Equal(t, uuid.Nil, actor.UserID)
		assert.Nil(t, actor.Scopes)
		// no scope map means unrestricted
		assert.Equal(t, auth.ScopeAll, actor.ScopeFor("Contact"))
	})

	t.Run("malformed user id is ignored", func(t *testing.T) {
		actor := resolveActor(t, map[string]string{"X-User-ID": "not-a-uuid"})
		assert.Equal(t, uuid.Nil, actor.UserID)
	})

	t.Run("malformed scopes are ignored", func(t *testing.T) {
		actor := resolveActor(t, map[string]string{"X-Data-Scopes": "{broken"})
		assert.Nil(t, actor.Scopes)
	})
}

func TestGetActorWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	actor := GetActor(c)
	require.NotNil(t, actor)
	assert.Equal(t, uuid.Nil, actor.UserID)
}
