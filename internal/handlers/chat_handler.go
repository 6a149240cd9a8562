package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chatlink_backend/internal/services"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/pkg/apperrors"
)

const typingIndicatorTTL = 10 * time.Second

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
	userService services.UserService
	typing      *typingTracker
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService, userService services.UserService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
		userService: userService,
		typing:      newTypingTracker(typingIndicatorTTL),
	}
}

func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/send", h.Send)
	rg.GET("/conversations", h.Conversations)
	rg.GET("/get/:user_id", h.Thread)
	rg.GET("/updates", h.Updates)
	rg.GET("/search-users", h.SearchUsers)
	rg.GET("/unread", h.Unread)
	rg.POST("/mark-read/:message_id", h.MarkRead)
	rg.POST("/mark-unread/:user_id", h.MarkUnread)
	rg.DELETE("/delete/:user_id", h.Delete)
	rg.POST("/typing", h.Typing)
	rg.GET("/typing-status", h.TypingStatus)
}

func (h *ChatHandler) Send(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.chatService.SendMessage(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ChatHandler) Conversations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	conversations, err := h.chatService.ListConversations(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// Thread returns the full conversation with the given user and marks the
// incoming side read.
func (h *ChatHandler) Thread(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.chatService.FetchThread(db, userID, c.Param("user_id"), 0)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Updates is the polling endpoint: messages with an id strictly greater
// than last_id, read-marking included.
func (h *ChatHandler) Updates(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	counterpartID := c.Query("user_id")
	if counterpartID == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Parameter 'user_id' is required"))
		return
	}
	lastID, ok := h.ParseQueryUint(c, "last_id")
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.chatService.FetchThread(db, userID, counterpartID, lastID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) SearchUsers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	resp, err := h.userService.SearchUsers(db, userID, c.Query("q"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) Unread(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	count, err := h.chatService.UnreadCount(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	messageID, ok := h.ParseParamUint(c, "message_id")
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	if err := h.chatService.MarkRead(db, userID, messageID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *ChatHandler) MarkUnread(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	if err := h.chatService.MarkUnread(db, userID, c.Param("user_id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *ChatHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	db, ok := h.GetDB(c)
	if !ok {
		return
	}

	if err := h.chatService.DeleteConversation(db, userID, c.Param("user_id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Conversation deleted"})
}

func (h *ChatHandler) Typing(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.TypingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	h.typing.Set(userID, req.RecipientID, req.IsTyping)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// TypingStatus reports whether the given user is typing to the caller.
func (h *ChatHandler) TypingStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	counterpartID := c.Query("user_id")
	if counterpartID == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Parameter 'user_id' is required"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_typing": h.typing.IsTyping(counterpartID, userID)})
}
