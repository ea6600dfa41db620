package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"server-match/internal/schemas"
	"server-match/internal/utils"
	"server-match/internal/validators"
)

// ValidateAndSanitizeStruct decodes the request body into a fresh instance
// of the given model, sanitizes its string fields, validates it, and stores
// the result in the context. Validation happens before the handler runs, so
// invalid input never reaches storage or crypto work.
func ValidateAndSanitizeStruct(model interface{}) gin.HandlerFunc {
	modelType := reflect.TypeOf(model).Elem()

	return func(c *gin.Context) {
		obj := reflect.New(modelType).Interface()

		if err := c.ShouldBindJSON(obj); err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}

		validator := validators.GetValidator()
		if err := validator.SanitizeData(obj); err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}

		if err := validator.Validate.Struct(obj); err != nil {
			customErr := schemas.BadRequest.WithMessage(validators.ValidationMessage(err))
			utils.WriteAndLogError(c, customErr, http.StatusBadRequest, err)
			return
		}

		c.Set(utils.SanitizedPayloadKey.String(), obj)
		c.Next()
	}
}
