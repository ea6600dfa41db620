package utils

import (
	"github.com/gin-gonic/gin"

	"server-match/internal/schemas"
)

// WriteAndLogResponse encodes the response object to JSON and writes it to the HTTP response
// with the provided status code.
func WriteAndLogResponse(ctx *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(ctx, "info", "Returning response")
	ctx.JSON(statusCode, response)
}

// WriteAndLogError logs the provided error and sends an error response with the specified
// status code and the coarse catalog error. The internal cause is only logged, never sent.
func WriteAndLogError(ctx *gin.Context, customErr *schemas.CustomError, statusCode int, err error) {
	LogMessageWithFieldsAndError(ctx, "error", "Error occurred", err)
	LogMessageWithFields(ctx, "error", "Returning "+customErr.Code+" / "+customErr.Message)
	ctx.AbortWithStatusJSON(statusCode, &schemas.ErrorDTO{Error: *customErr})
}
