package services

import (
	"chatlink_backend/internal/repositories"
	"chatlink_backend/internal/storage"
)

// ServiceContainer wires repositories into services once at startup.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Contact      ContactService
	Chat         ChatService
	Profile      ProfileService
	Notification NotificationService
}

func NewServiceContainer(store storage.Storage) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	contactRepo := repositories.NewContactRepository()
	messageRepo := repositories.NewMessageRepository()
	notificationRepo := repositories.NewNotificationRepository()

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, profileRepo),
		User:         NewUserService(userRepo, messageRepo),
		Contact:      NewContactService(contactRepo, userRepo, notificationRepo),
		Chat:         NewChatService(messageRepo, userRepo),
		Profile:      NewProfileService(userRepo, profileRepo, store),
		Notification: NewNotificationService(notificationRepo),
	}
}
