package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/docgen/backend/internal/domain/rendering"
	"github.com/docgen/backend/internal/domain/shared"
	"github.com/docgen/backend/internal/interfaces/http/middleware"
)

// MockTemplateRepository is a mock implementation of TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*rendering.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rendering.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindByEntityType(ctx context.Context, entityType rendering.EntityType, filter shared.Filter) ([]*rendering.Template, error) {
	args := m.Called(ctx, entityType, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rendering.Template), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *rendering.Template) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTemplateTestServer(templates *MockTemplateRepository) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.Actor())
	h := NewTemplateHandler(templates)
	engine.GET("/templates", h.List)
	engine.GET("/templates/:id", h.Get)
	engine.POST("/templates", h.Create)
	engine.DELETE("/templates/:id", h.Delete)
	return engine
}

func newHandlerTemplate(t *testing.T, name string) *rendering.Template {
	t.Helper()
	tpl, err := rendering.NewTemplate(rendering.EntityTypeContact, name, "<p>{{.name}}</p>")
	require.NoError(t, err)
	return tpl
}

func TestTemplateHandlerList(t *testing.T) {
	t.Run("requires entity_type", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/templates", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lists templates for an entity type", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		stored := []*rendering.Template{
			newHandlerTemplate(t, "Contact Card"),
			newHandlerTemplate(t, "Contact Letter"),
		}
		templates.On("FindByEntityType", mock.Anything, rendering.EntityTypeContact, mock.Anything).
			Return(stored, nil)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/templates?entity_type=Contact", nil))

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		list, ok := resp.Data.([]any)
		require.True(t, ok)
		assert.Len(t, list, 2)
	})

	t.Run("passes the status filter through", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		templates.On("FindByEntityType", mock.Anything, rendering.EntityTypeContact,
			mock.MatchedBy(func(f shared.Filter) bool { return f.Filters["status"] == "ACTIVE" })).
			Return([]*rendering.Template{}, nil)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/templates?entity_type=Contact&status=ACTIVE", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		templates.AssertExpectations(t)
	})
}

func TestTemplateHandlerGet(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/templates/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)
		templates.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/templates/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns the template without markup bodies", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		tpl := newHandlerTemplate(t, "Contact Card")
		templates.On("FindByID", mock.Anything, tpl.ID).Return(tpl, nil)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/templates/"+tpl.ID.String(), nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "{{.name}}")
		assert.Contains(t, w.Body.String(), "Contact Card")
	})
}

func TestTemplateHandlerCreate(t *testing.T) {
	postJSON := func(engine *gin.Engine, body map[string]any, headers map[string]string) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(body)
		req := httptest.NewRequest("POST", "/templates", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	t.Run("creates a template with defaults", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		var saved *rendering.Template
		templates.On("Save", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*rendering.Template) }).
			Return(nil)

		w := postJSON(engine, map[string]any{
			"entity_type": "Contact",
			"name":        "Contact Card",
			"body":        "<p>{{.name}}</p>",
		}, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, saved)
		assert.Equal(t, rendering.OrientationPortrait, saved.Orientation)
		assert.Equal(t, rendering.PageFormatA4, saved.PageFormat)
		assert.Nil(t, saved.CreatedBy)
	})

	t.Run("applies layout, margins and font", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		var saved *rendering.Template
		templates.On("Save", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*rendering.Template) }).
			Return(nil)

		w := postJSON(engine, map[string]any{
			"entity_type":     "Invoice",
			"name":            "Invoice Sheet",
			"body":            "<p>{{.total}}</p>",
			"orientation":     "LANDSCAPE",
			"page_format":     "Custom",
			"page_width":      200,
			"page_height":     300,
			"footer":          "<p>{pageNumber}</p>",
			"print_footer":    true,
			"footer_position": 8,
			"margins":         map[string]int{"top": 5, "right": 6, "bottom": 7, "left": 8},
			"font_face":       "Georgia",
		}, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, saved)
		assert.Equal(t, rendering.OrientationLandscape, saved.Orientation)
		assert.Equal(t, rendering.PageFormatCustom, saved.PageFormat)
		assert.Equal(t, 200, saved.PageWidth)
		assert.Equal(t, 300, saved.PageHeight)
		assert.True(t, saved.PrintFooter)
		assert.Equal(t, 8, saved.FooterPosition)
		assert.Equal(t, rendering.Margins{Top: 5, Right: 6, Bottom: 7, Left: 8}, saved.Margins)
		assert.Equal(t, "Georgia", saved.FontFace)
	})

	t.Run("records the creating user", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		var saved *rendering.Template
		templates.On("Save", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*rendering.Template) }).
			Return(nil)

		userID := uuid.New()
		w := postJSON(engine, map[string]any{
			"entity_type": "Contact",
			"name":        "Contact Card",
			"body":        "<p>{{.name}}</p>",
		}, map[string]string{"X-User-ID": userID.String()})

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, saved.CreatedBy)
		assert.Equal(t, userID, *saved.CreatedBy)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		w := postJSON(engine, map[string]any{"entity_type": "Contact"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		templates.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown orientation", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		w := postJSON(engine, map[string]any{
			"entity_type": "Contact",
			"name":        "Contact Card",
			"body":        "<p>x</p>",
			"orientation": "DIAGONAL",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTemplateHandlerDelete(t *testing.T) {
	t.Run("deletes by id", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)

		id := uuid.New()
		templates.On("Delete", mock.Anything, id).Return(nil)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("DELETE", "/templates/"+id.String(), nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		templates := new(MockTemplateRepository)
		engine := newTemplateTestServer(templates)
		templates.On("Delete", mock.Anything, mock.Anything).Return(shared.ErrNotFound)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("DELETE", "/templates/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
