package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func Test_ToResponse_WithAppError_UsesStatusAndCode(t *testing.T) {
	SetProductionMode(false)

	response := ToResponse(NotFound(CodeProjectNotFound, "Project not found"))

	assert.Equal(t, http.StatusNotFound, response.HTTPStatus)
	assert.Equal(t, CodeProjectNotFound, response.Error.Code)
	assert.Equal(t, "Project not found", response.Error.Message)
	assert.Nil(t, response.Error.Extra)
}

func Test_ToResponse_WithWrappedAppError_FindsItInChain(t *testing.T) {
	wrapped := fmt.Errorf("while applying: %w", Conflict(CodeApplicationAlreadyExists, "exists"))

	response := ToResponse(wrapped)

	assert.Equal(t, http.StatusConflict, response.HTTPStatus)
	assert.Equal(t, CodeApplicationAlreadyExists, response.Error.Code)
}

func Test_ToResponse_WithUnknownError_Returns500WithDetailsOutsideProduction(t *testing.T) {
	SetProductionMode(false)

	response := ToResponse(errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, response.HTTPStatus)
	assert.Equal(t, CodeInternal, response.Error.Code)
	assert.Equal(t, "connection refused", response.Error.Extra["details"])
}

func Test_ToResponse_InProduction_SuppressesExtra(t *testing.T) {
	SetProductionMode(true)
	defer SetProductionMode(false)

	response := ToResponse(Validation(map[string]string{"title": "Title is required"}))

	assert.Equal(t, http.StatusBadRequest, response.HTTPStatus)
	assert.Equal(t, CodeValidationFailed, response.Error.Code)
	assert.Nil(t, response.Error.Extra)
}

func Test_Is_WithSameCode_Matches(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound(CodeProjectRoleNotFound, "Project role not found"))

	assert.True(t, errors.Is(err, NotFound(CodeProjectRoleNotFound, "different message")))
	assert.False(t, errors.Is(err, NotFound(CodeProjectNotFound, "Project not found")))
	assert.True(t, HasCode(err, CodeProjectRoleNotFound))
}

func Test_RecoveryMiddleware_WhenHandlerPanics_WritesEnvelope(t *testing.T) {
	SetProductionMode(false)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RecoveryMiddleware())
	router.GET("/boom", func(ctx *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, http.StatusInternalServerError, response.HTTPStatus)
	assert.Equal(t, CodeInternal, response.Error.Code)
	assert.Equal(t, "boom", response.Error.Extra["details"])
}
