package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"chatlink_backend/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// ConversationSummary is the per-counterpart rollup for the conversation list.
type ConversationSummary struct {
	CounterpartID string
	LastMessage   models.Message
	UnreadCount   int64
}

// CounterpartActivity ranks a counterpart by the later of the two directed
// timestamp maxima (messages sent to them vs. received from them). A
// counterpart that only ever sent, or only ever received, still ranks.
type CounterpartActivity struct {
	CounterpartID   string
	LastSentAt      time.Time
	LastReceivedAt  time.Time
	LastInteraction time.Time
}

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	FindByID(db *gorm.DB, id uint64) (*models.Message, error)
	FindThread(db *gorm.DB, userID, counterpartID string, sinceID uint64) ([]models.Message, error)
	MarkThreadRead(db *gorm.DB, counterpartID, userID string) error
	MarkThreadUnread(db *gorm.DB, counterpartID, userID string) error
	MarkMessageRead(db *gorm.DB, id uint64) error
	DeleteConversation(db *gorm.DB, userA, userB string) error
	CountUnread(db *gorm.DB, userID string) (int64, error)
	ConversationSummaries(db *gorm.DB, userID string) ([]ConversationSummary, error)
	RecentCounterparts(db *gorm.DB, userID string, limit int) ([]CounterpartActivity, error)
	CountForUser(db *gorm.DB, userID string) (int64, error)
	FindRecentForUser(db *gorm.DB, userID string, limit int) ([]models.Message, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(db *gorm.DB, id uint64) (*models.Message, error) {
	var message models.Message
	err := db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// FindThread returns both directions of the pair ordered by timestamp then id
// (stable under equal timestamps). sinceID > 0 restricts to newer messages,
// which is the polling cursor.
func (r *MessageRepositoryImpl) FindThread(db *gorm.DB, userID, counterpartID string, sinceID uint64) ([]models.Message, error) {
	query := db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, counterpartID, counterpartID, userID)
	if sinceID > 0 {
		query = query.Where("id > ?", sinceID)
	}

	var messages []models.Message
	err := query.Order("timestamp ASC, id ASC").Find(&messages).Error
	return messages, err
}

// MarkThreadRead flips every unread message from counterpart to user. Callers
// run it inside the same transaction as the thread fetch.
func (r *MessageRepositoryImpl) MarkThreadRead(db *gorm.DB, counterpartID, userID string) error {
	return db.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", counterpartID, userID, false).
		Update("is_read", true).Error
}

// MarkThreadUnread reverts every message from counterpart to user to unread.
func (r *MessageRepositoryImpl) MarkThreadUnread(db *gorm.DB, counterpartID, userID string) error {
	return db.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ?", counterpartID, userID).
		Update("is_read", false).Error
}

func (r *MessageRepositoryImpl) MarkMessageRead(db *gorm.DB, id uint64) error {
	result := db.Model(&models.Message{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepositoryImpl) DeleteConversation(db *gorm.DB, userA, userB string) error {
	return db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Delete(&models.Message{}).Error
}

func (r *MessageRepositoryImpl) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// ConversationSummaries loads the user's messages newest-first and rolls them
// up per counterpart in one pass: the first message seen per counterpart is
// the last message (timestamp desc, id desc tiebreak), unread counts only the
// counterpart-to-user direction. Result order follows last-message recency.
func (r *MessageRepositoryImpl) ConversationSummaries(db *gorm.DB, userID string) ([]ConversationSummary, error) {
	var messages []models.Message
	err := db.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("timestamp DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var summaries []ConversationSummary
	for _, msg := range messages {
		counterpart := msg.RecipientID
		if msg.RecipientID == userID {
			counterpart = msg.SenderID
		}

		i, seen := index[counterpart]
		if !seen {
			i = len(summaries)
			index[counterpart] = i
			summaries = append(summaries, ConversationSummary{
				CounterpartID: counterpart,
				LastMessage:   msg,
			})
		}
		if msg.SenderID == counterpart && msg.RecipientID == userID && !msg.IsRead {
			summaries[i].UnreadCount++
		}
	}
	return summaries, nil
}

// RecentCounterparts computes, per counterpart, the maximum sent timestamp and
// the maximum received timestamp separately, then ranks by the greater of the
// two. Counterparts in a single direction keep the zero value on the other side.
func (r *MessageRepositoryImpl) RecentCounterparts(db *gorm.DB, userID string, limit int) ([]CounterpartActivity, error) {
	var messages []models.Message
	err := db.
		Select("sender_id", "recipient_id", "timestamp").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	activity := make(map[string]*CounterpartActivity)
	get := func(counterpart string) *CounterpartActivity {
		a, ok := activity[counterpart]
		if !ok {
			a = &CounterpartActivity{CounterpartID: counterpart}
			activity[counterpart] = a
		}
		return a
	}

	for _, msg := range messages {
		if msg.SenderID == userID {
			a := get(msg.RecipientID)
			if msg.Timestamp.After(a.LastSentAt) {
				a.LastSentAt = msg.Timestamp
			}
		} else {
			a := get(msg.SenderID)
			if msg.Timestamp.After(a.LastReceivedAt) {
				a.LastReceivedAt = msg.Timestamp
			}
		}
	}

	result := make([]CounterpartActivity, 0, len(activity))
	for _, a := range activity {
		a.LastInteraction = a.LastSentAt
		if a.LastReceivedAt.After(a.LastInteraction) {
			a.LastInteraction = a.LastReceivedAt
		}
		result = append(result, *a)
	}

	// Insertion sort by last interaction descending; counterpart sets are small.
	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j].LastInteraction.After(result[j-1].LastInteraction); j-- {
			result[j], result[j-1] = result[j-1], result[j]
		}
	}

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *MessageRepositoryImpl) CountForUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) FindRecentForUser(db *gorm.DB, userID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := db.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
