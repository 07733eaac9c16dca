package errs

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"opensourcetogether/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Extra   map[string]any `json:"extra,omitempty"`
}

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	HTTPStatus int       `json:"httpStatus"`
	Error      ErrorBody `json:"error"`
}

var isProduction atomic.Bool

// SetProductionMode hides Extra from responses when enabled.
func SetProductionMode(enabled bool) {
	isProduction.Store(enabled)
}

func ToResponse(err error) ErrorResponse {
	appErr, ok := As(err)
	if !ok {
		appErr = Internal(CodeInternal, "Internal server error", err).
			WithExtra("details", err.Error())
	}

	body := ErrorBody{
		Message: appErr.Message,
		Code:    appErr.Code,
	}
	if !isProduction.Load() && len(appErr.Extra) > 0 {
		body.Extra = appErr.Extra
	}

	return ErrorResponse{HTTPStatus: appErr.Status, Error: body}
}

// Respond writes err as the error envelope and aborts the chain.
func Respond(ctx *gin.Context, err error) {
	response := ToResponse(err)

	if response.HTTPStatus >= http.StatusInternalServerError {
		logger.GetLogger().Error("request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"code", response.Error.Code,
			"error", err,
		)
	}

	ctx.AbortWithStatusJSON(response.HTTPStatus, response)
}

// RespondInvalidBody is used when binding the JSON body or query fails.
func RespondInvalidBody(ctx *gin.Context, err error) {
	Respond(ctx, BadRequest(CodeInvalidRequest, "Invalid request format").WithExtra("details", err.Error()))
}

// RecoveryMiddleware turns panics into a 500 envelope instead of gin's bare 500.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		Respond(ctx, Internal(CodeInternal, "Internal server error", fmt.Errorf("panic: %v", recovered)).
			WithExtra("details", fmt.Sprint(recovered)))
	})
}

func NoRouteHandler(ctx *gin.Context) {
	Respond(ctx, NotFound(CodeRouteNotFound, "Route not found"))
}
