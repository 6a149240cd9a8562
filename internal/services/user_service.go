package services

import (
	"strings"

	"gorm.io/gorm"

	"chatlink_backend/internal/repositories"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/pkg/apperrors"
)

const (
	searchResultLimit     = 10
	dashboardRecentLimit  = 5
	dashboardContactLimit = 3
)

// UserService is the directory: search plus the dashboard rollup.
type UserService interface {
	SearchUsers(db *gorm.DB, callerID, query string) (*dto.SearchUsersResponse, error)
	GetDashboard(db *gorm.DB, userID string) (*dto.DashboardResponse, error)
}

type userService struct {
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
}

func NewUserService(userRepo repositories.UserRepository, messageRepo repositories.MessageRepository) UserService {
	return &userService{userRepo: userRepo, messageRepo: messageRepo}
}

func (s *userService) SearchUsers(db *gorm.DB, callerID, query string) (*dto.SearchUsersResponse, error) {
	resp := &dto.SearchUsersResponse{Users: []dto.UserSummary{}}

	query = strings.TrimSpace(query)
	if query == "" {
		return resp, nil
	}

	users, err := s.userRepo.Search(db, callerID, query, searchResultLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for i := range users {
		resp.Users = append(resp.Users, userSummary(&users[i]))
	}
	return resp, nil
}

func (s *userService) GetDashboard(db *gorm.DB, userID string) (*dto.DashboardResponse, error) {
	unread, err := s.messageRepo.CountUnread(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.messageRepo.CountForUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	recent, err := s.messageRepo.FindRecentForUser(db, userID, dashboardRecentLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	recentMessages := make([]dto.MessageResponse, 0, len(recent))
	for i := range recent {
		recentMessages = append(recentMessages, messageResponse(&recent[i], userID))
	}

	// Active conversations counts every counterpart; recent contacts keeps
	// the top few ranked by last interaction in either direction.
	activity, err := s.messageRepo.RecentCounterparts(db, userID, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	recentContacts := make([]dto.RecentContact, 0, dashboardContactLimit)
	for i := range activity {
		if len(recentContacts) == dashboardContactLimit {
			break
		}
		counterpart, err := s.userRepo.FindByID(db, activity[i].CounterpartID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				continue
			}
			return nil, apperrors.InternalError(err)
		}
		recentContacts = append(recentContacts, dto.RecentContact{
			User:            userSummary(counterpart),
			LastInteraction: activity[i].LastInteraction,
		})
	}

	return &dto.DashboardResponse{
		UnreadCount:         unread,
		ActiveConversations: len(activity),
		TotalMessages:       total,
		RecentMessages:      recentMessages,
		RecentContacts:      recentContacts,
	}, nil
}
