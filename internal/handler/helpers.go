package handler

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/apierror"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// ── Envelope writers ─────────────────────────────────────────────────────────
// Every success response leaves the server in the same envelope the console
// client decodes: list, mutation, bare data, or a lone {success:true}.

func respondList[T any](c *gin.Context, items []T, pagination dto.Pagination) {
	if items == nil {
		items = []T{}
	}
	payload := dto.ListPayload[T]{Data: items, Pagination: pagination}
	c.JSON(http.StatusOK, dto.Envelope[dto.ListPayload[T]]{Success: true, Data: &payload})
}

func respondMutation[T any](c *gin.Context, status int, message string, data T) {
	payload := dto.MutationPayload[T]{Message: message, Data: data}
	c.JSON(status, dto.Envelope[dto.MutationPayload[T]]{Success: true, Data: &payload})
}

func respondData[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, dto.Envelope[T]{Success: true, Data: &data})
}

func respondDeleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
