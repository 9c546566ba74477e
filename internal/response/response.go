package response

import "github.com/gin-gonic/gin"

// SuccessResponse is the envelope of every successful API response
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// ErrorBody is the error part of ErrorResponse
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every failed API response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// SendSuccess writes data wrapped in a SuccessResponse
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Data: data})
}

// SendError writes an ErrorResponse and aborts the handler chain
func SendError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
