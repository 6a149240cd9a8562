package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatlink_backend/internal/services"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/pkg/apperrors"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	userService    services.UserService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService, userService services.UserService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		userService:    userService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
	rg.PUT("", h.Update)
	rg.POST("/avatar", h.UploadAvatar)
	rg.POST("/password", h.ChangePassword)
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/:user_id", h.GetUser)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.profileService.GetProfile(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetUser returns another user's public profile.
func (h *ProfileHandler) GetUser(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.profileService.GetProfile(db, c.Param("user_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	// Public view strips the email.
	resp.User.Email = ""
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.profileService.UpdateProfile(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Form field 'avatar' is required"))
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.profileService.UploadAvatar(db, userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	if err := h.profileService.ChangePassword(db, userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Password updated"})
}

func (h *ProfileHandler) Dashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetDashboard(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
