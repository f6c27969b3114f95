package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"food-ordering-api/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const ctxBody = "body"

func init() {
	// Report json field names in validation messages.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	}
}

// BindJSON decodes and validates the request body as T. Later stages read
// it with Body.
func BindJSON[T any]() Stage {
	return func(c *gin.Context) error {
		body := new(T)
		if err := c.ShouldBindJSON(body); err != nil {
			return &apperr.Error{Kind: apperr.KindValidation, Message: ValidationMessage(err), Err: err}
		}
		c.Set(ctxBody, body)
		return nil
	}
}

// SetBody stores a decoded request body for later stages.
func SetBody[T any](c *gin.Context, body *T) {
	c.Set(ctxBody, body)
}

// Body returns the value stored by BindJSON or SetBody, or nil.
func Body[T any](c *gin.Context) *T {
	v, ok := c.Get(ctxBody)
	if !ok {
		return nil
	}
	body, _ := v.(*T)
	return body
}

// ValidationMessage turns binding errors into a short client message.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	}
	return "Invalid request body"
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
