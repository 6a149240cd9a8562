package dto

import "time"

// UserSummary is the public view of a user embedded in most responses.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

type SearchUsersResponse struct {
	Users []UserSummary `json:"users"`
}

// RecentContact is a dashboard entry ranked by last interaction.
type RecentContact struct {
	User            UserSummary `json:"user"`
	LastInteraction time.Time   `json:"last_interaction"`
}

// DashboardResponse aggregates the profile landing page numbers.
type DashboardResponse struct {
	UnreadCount         int64             `json:"unread_count"`
	ActiveConversations int               `json:"active_conversations"`
	TotalMessages       int64             `json:"total_messages"`
	RecentMessages      []MessageResponse `json:"recent_messages"`
	RecentContacts      []RecentContact   `json:"recent_contacts"`
}
