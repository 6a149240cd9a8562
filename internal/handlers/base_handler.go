package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chatlink_backend/internal/middleware"
	"chatlink_backend/internal/validator"
	"chatlink_backend/pkg/apperrors"
	"chatlink_backend/pkg/contextkeys"
)

// BaseHandler carries the request plumbing shared by every handler:
// payload binding, validation, DB extraction and error rendering.
type BaseHandler struct {
	Validator *validator.Validator
}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{Validator: validator.New()}
}

// GetDB pulls the request-scoped DB handle injected by DBMiddleware. The
// request context is checked as a fallback for handlers invoked outside
// the full middleware chain.
func (h *BaseHandler) GetDB(c *gin.Context) (*gorm.DB, bool) {
	if v, ok := c.Get(string(contextkeys.DBContextKey)); ok {
		if db, ok := v.(*gorm.DB); ok && db != nil {
			return db, true
		}
	}
	if db, ok := c.Request.Context().Value(contextkeys.DBContextKey).(*gorm.DB); ok && db != nil {
		return db, true
	}
	apperrors.HandleError(c, apperrors.New(
		apperrors.CodeInternalError, "system", "Database unavailable", http.StatusInternalServerError))
	return nil, false
}

// BindAndValidateJSON binds the JSON body into req and runs struct
// validation, rendering the error response itself on failure.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid JSON payload").WithError(err))
		return false
	}
	if err := h.Validator.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// GetAndAuthorizeUserID returns the authenticated user id, rendering a 401
// when the auth middleware did not run or the token carried no subject.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return userID, true
}

// HandleServiceError renders a service-layer error.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// ParseQueryUint reads an optional unsigned query parameter, 0 when absent.
func (h *BaseHandler) ParseQueryUint(c *gin.Context, name string) (uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Parameter '"+name+"' must be a non-negative integer"))
		return 0, false
	}
	return value, true
}

// ParseParamUint reads a required unsigned path parameter.
func (h *BaseHandler) ParseParamUint(c *gin.Context, name string) (uint64, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Parameter '"+name+"' must be a non-negative integer"))
		return 0, false
	}
	return value, true
}
