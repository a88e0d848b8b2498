package handler

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/gperfar/chatbot-admin/internal/domain"
)

// Response is the envelope of every JSON response
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// SuccessResponse returns a successful response
func SuccessResponse(c *app.RequestContext, data any) {
	c.JSON(consts.StatusOK, Response{
		Code:    "SUCCESS",
		Message: "operation successful",
		Data:    data,
	})
}

// ErrorResponse maps err to a status code. Upstream failures become 502
// with the upstream status kept in the message; nothing else leaks.
func ErrorResponse(c *app.RequestContext, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(consts.StatusNotFound, Response{
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
	case domain.IsValidation(err):
		c.JSON(consts.StatusBadRequest, Response{
			Code:    "INVALID_INPUT",
			Message: err.Error(),
		})
	case domain.IsNetwork(err):
		c.JSON(consts.StatusBadGateway, Response{
			Code:    "UPSTREAM_ERROR",
			Message: "chatbot API request failed",
			Data:    upstreamStatus(err),
		})
	default:
		c.JSON(consts.StatusInternalServerError, Response{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		})
	}
}

func upstreamStatus(err error) map[string]any {
	netErr, ok := asNetworkError(err)
	if !ok || netErr.StatusCode == 0 {
		return map[string]any{"reachable": false}
	}
	return map[string]any{"reachable": true, "status": netErr.StatusCode}
}
