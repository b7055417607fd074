package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgen/backend/internal/domain/shared"
	infra "github.com/docgen/backend/internal/infrastructure/rendering"
	"github.com/docgen/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Created(c, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerBadRequest(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.BadRequest(c, "missing field")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeInvalidInput, resp.Error.Code)
	assert.Equal(t, "missing field", resp.Error.Message)
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            shared.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   shared.CodeNotFound,
		},
		{
			name:           "forbidden",
			err:            shared.ErrForbidden,
			expectedStatus: http.StatusForbidden,
			expectedCode:   shared.CodeForbidden,
		},
		{
			name:           "validation mismatch",
			err:            shared.ErrValidationMismatch,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   shared.CodeValidationMismatch,
		},
		{
			name:           "volume limit",
			err:            shared.ErrVolumeLimitExceeded,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   shared.CodeVolumeLimitExceeded,
		},
		{
			name:           "render failure",
			err:            infra.NewRenderError(infra.ErrCodeRenderFailed, "browser gone", nil),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   shared.CodeRenderFailed,
		},
		{
			name:           "unknown error",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "ERR_INTERNAL",
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}
