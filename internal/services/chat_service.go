package services

import (
	"strings"

	"gorm.io/gorm"

	"chatlink_backend/internal/metrics"
	"chatlink_backend/internal/models"
	"chatlink_backend/internal/repositories"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/pkg/apperrors"
)

// ChatService owns the conversation store: sending, thread fetches with
// read tracking, the incremental updates cursor and the per-conversation
// unread bookkeeping.
type ChatService interface {
	SendMessage(db *gorm.DB, senderID string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	FetchThread(db *gorm.DB, userID, counterpartID string, sinceID uint64) (*dto.ThreadResponse, error)
	ListConversations(db *gorm.DB, userID string) ([]dto.ConversationResponse, error)
	DeleteConversation(db *gorm.DB, userID, counterpartID string) error
	UnreadCount(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, userID string, messageID uint64) error
	MarkUnread(db *gorm.DB, userID, counterpartID string) error
}

type chatService struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
}

func NewChatService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) ChatService {
	return &chatService{messageRepo: messageRepo, userRepo: userRepo}
}

func messageResponse(msg *models.Message, viewerID string) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        msg.ID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		IsRead:    msg.IsRead,
		IsMe:      msg.SenderID == viewerID,
	}
}

func (s *chatService) SendMessage(db *gorm.DB, senderID string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyMessage
	}

	recipient, err := s.userRepo.FindByID(db, req.RecipientID)
	if err != nil {
		return nil, handleUserLookupError(err)
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Content:     content,
	}
	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.MessageSent()
	return &dto.SendMessageResponse{
		Status:    "success",
		MessageID: message.ID,
		Timestamp: message.Timestamp,
		Content:   message.Content,
		TempID:    req.TempID,
	}, nil
}

// FetchThread returns the conversation with counterpartID and marks the
// counterpart's messages as read in the same transaction, so the unread
// count observed afterwards is already zero. sinceID > 0 is the polling
// cursor and limits the result to messages with a strictly greater id.
func (s *chatService) FetchThread(db *gorm.DB, userID, counterpartID string, sinceID uint64) (*dto.ThreadResponse, error) {
	counterpart, err := s.userRepo.FindByID(db, counterpartID)
	if err != nil {
		return nil, handleUserLookupError(err)
	}

	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	messages, err := s.messageRepo.FindThread(tx, userID, counterpartID, sinceID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.messageRepo.MarkThreadRead(tx, counterpartID, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		resp := messageResponse(&messages[i], userID)
		// The fetch itself marked incoming messages read; reflect that in
		// the payload rather than the pre-update snapshot.
		if messages[i].RecipientID == userID {
			resp.IsRead = true
		}
		responses = append(responses, resp)
	}

	return &dto.ThreadResponse{
		Messages:  responses,
		OtherUser: userSummary(counterpart),
	}, nil
}

func (s *chatService) ListConversations(db *gorm.DB, userID string) ([]dto.ConversationResponse, error) {
	summaries, err := s.messageRepo.ConversationSummaries(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	conversations := make([]dto.ConversationResponse, 0, len(summaries))
	for i := range summaries {
		counterpart, err := s.userRepo.FindByID(db, summaries[i].CounterpartID)
		if err != nil {
			// Counterpart rows can disappear; skip the orphaned thread.
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				continue
			}
			return nil, apperrors.InternalError(err)
		}
		last := messageResponse(&summaries[i].LastMessage, userID)
		conversations = append(conversations, dto.ConversationResponse{
			User:        userSummary(counterpart),
			LastMessage: &last,
			UnreadCount: summaries[i].UnreadCount,
		})
	}
	return conversations, nil
}

func (s *chatService) DeleteConversation(db *gorm.DB, userID, counterpartID string) error {
	if _, err := s.userRepo.FindByID(db, counterpartID); err != nil {
		return handleUserLookupError(err)
	}
	if err := s.messageRepo.DeleteConversation(db, userID, counterpartID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *chatService) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.messageRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// MarkRead flips a single message; only its recipient may do so.
func (s *chatService) MarkRead(db *gorm.DB, userID string, messageID uint64) error {
	message, err := s.messageRepo.FindByID(db, messageID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.ErrMessageNotFound
		}
		return apperrors.InternalError(err)
	}
	if message.RecipientID != userID {
		return apperrors.NewForbiddenError("You cannot mark this message")
	}
	if err := s.messageRepo.MarkMessageRead(db, messageID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// MarkUnread reverts the whole incoming side of a thread to unread.
func (s *chatService) MarkUnread(db *gorm.DB, userID, counterpartID string) error {
	if _, err := s.userRepo.FindByID(db, counterpartID); err != nil {
		return handleUserLookupError(err)
	}
	if err := s.messageRepo.MarkThreadUnread(db, counterpartID, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
