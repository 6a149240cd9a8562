package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatlink_backend/internal/services"
	"chatlink_backend/internal/services/dto"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{BaseHandler: base, contactService: contactService}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("/add", h.Add)
	rg.POST("/respond", h.Respond)
	rg.POST("/remove", h.Remove)
}

func (h *ContactHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.contactService.ListContacts(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContactHandler) Add(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.AddContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.contactService.RequestContact(db, userID, req.ContactID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContactHandler) Respond(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.RespondToRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.contactService.RespondToRequest(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContactHandler) Remove(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.RemoveContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.contactService.RemoveContact(db, userID, req.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
