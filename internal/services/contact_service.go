package services

import (
	"gorm.io/gorm"

	"chatlink_backend/internal/metrics"
	"chatlink_backend/internal/models"
	"chatlink_backend/internal/repositories"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/pkg/apperrors"
)

// ContactService runs the pairwise relationship state machine:
// pending -> accepted | rejected, with accepted removable back to
// "no relationship". Rejected is terminal; there is no re-request path.
type ContactService interface {
	RequestContact(db *gorm.DB, requesterID, targetID string) (*dto.ContactStatusResponse, error)
	RespondToRequest(db *gorm.DB, recipientID string, req *dto.RespondToRequestRequest) (*dto.ContactStatusResponse, error)
	RemoveContact(db *gorm.DB, callerID, otherUserID string) (*dto.ContactStatusResponse, error)
	ListContacts(db *gorm.DB, userID string) (*dto.ContactListResponse, error)
}

type contactService struct {
	contactRepo      repositories.ContactRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewContactService(
	contactRepo repositories.ContactRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) ContactService {
	return &contactService{
		contactRepo:      contactRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// infoForExisting maps an existing pair record to the informational
// (non-error) response for a repeated request.
func infoForExisting(contact *models.Contact, requesterID string) *dto.ContactStatusResponse {
	switch contact.Status {
	case models.ContactStatusPending:
		if contact.RequesterID == requesterID {
			return &dto.ContactStatusResponse{Status: "info", Message: "Request already sent"}
		}
		return &dto.ContactStatusResponse{Status: "info", Message: "This user has already sent you a request"}
	case models.ContactStatusAccepted:
		return &dto.ContactStatusResponse{Status: "info", Message: "Already connected"}
	default:
		return &dto.ContactStatusResponse{Status: "info", Message: "Request was previously rejected"}
	}
}

func (s *contactService) RequestContact(db *gorm.DB, requesterID, targetID string) (*dto.ContactStatusResponse, error) {
	if targetID == requesterID {
		return nil, apperrors.ErrSelfContact
	}

	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	target, err := s.userRepo.FindByID(tx, targetID)
	if err != nil {
		return nil, handleUserLookupError(err)
	}
	requester, err := s.userRepo.FindByID(tx, requesterID)
	if err != nil {
		return nil, handleUserLookupError(err)
	}

	existing, err := s.contactRepo.FindBetween(tx, requesterID, targetID)
	if err == nil {
		return infoForExisting(existing, requesterID), nil
	}
	if !apperrors.Is(err, repositories.ErrContactNotFound) {
		return nil, apperrors.InternalError(err)
	}

	contact := &models.Contact{
		RequesterID: requesterID,
		RecipientID: target.ID,
		Status:      models.ContactStatusPending,
	}
	if err := s.contactRepo.Create(tx, contact); err != nil {
		// The unique pair index fires when a concurrent request created the
		// record first; collapse the race into the informational path.
		if repositories.IsDuplicatePairError(err) {
			tx.Rollback()
			if existing, lookupErr := s.contactRepo.FindBetween(db, requesterID, targetID); lookupErr == nil {
				return infoForExisting(existing, requesterID), nil
			}
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.notificationRepo.CreateContactRequestNotification(tx, contact, requester.Username); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.ContactTransition("requested")
	return &dto.ContactStatusResponse{Status: "success", Message: "Contact request sent"}, nil
}

func (s *contactService) RespondToRequest(db *gorm.DB, recipientID string, req *dto.RespondToRequestRequest) (*dto.ContactStatusResponse, error) {
	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// The pending filter makes this single-fire: a second respond on the
	// same request finds nothing.
	contact, err := s.contactRepo.FindPendingForRecipient(tx, req.RequestID, recipientID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContactNotFound) {
			return nil, apperrors.ErrContactRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	var message string
	switch req.Action {
	case "accept":
		if err := s.contactRepo.UpdateStatus(tx, contact.ID, models.ContactStatusAccepted); err != nil {
			return nil, apperrors.InternalError(err)
		}
		recipient, err := s.userRepo.FindByID(tx, recipientID)
		if err != nil {
			return nil, handleUserLookupError(err)
		}
		if err := s.notificationRepo.CreateContactAcceptedNotification(tx, contact.RequesterID, recipient.Username); err != nil {
			return nil, apperrors.InternalError(err)
		}
		message = "Contact request accepted"

	case "reject":
		// No notification on rejection.
		if err := s.contactRepo.UpdateStatus(tx, contact.ID, models.ContactStatusRejected); err != nil {
			return nil, apperrors.InternalError(err)
		}
		message = "Contact request rejected"

	default:
		return nil, apperrors.ErrInvalidContactAction
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.ContactTransition(req.Action + "ed")
	return &dto.ContactStatusResponse{Status: "success", Message: message, Action: req.Action}, nil
}

func (s *contactService) RemoveContact(db *gorm.DB, callerID, otherUserID string) (*dto.ContactStatusResponse, error) {
	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := s.userRepo.FindByID(tx, otherUserID); err != nil {
		return nil, handleUserLookupError(err)
	}

	// Removing an absent relationship is a no-op success.
	if err := s.contactRepo.DeleteAcceptedBetween(tx, callerID, otherUserID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.ContactTransition("removed")
	return &dto.ContactStatusResponse{Status: "success", Message: "Contact removed successfully"}, nil
}

func (s *contactService) ListContacts(db *gorm.DB, userID string) (*dto.ContactListResponse, error) {
	accepted, err := s.contactRepo.FindAcceptedForUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	contacts := make([]dto.UserSummary, 0, len(accepted))
	for _, contact := range accepted {
		counterpart := contact.Recipient
		if contact.RecipientID == userID {
			counterpart = contact.Requester
		}
		if counterpart == nil {
			continue
		}
		contacts = append(contacts, userSummary(counterpart))
	}

	pending, err := s.contactRepo.FindPendingIncoming(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	pendingRequests := make([]dto.PendingRequestResponse, 0, len(pending))
	for _, contact := range pending {
		if contact.Requester == nil {
			continue
		}
		pendingRequests = append(pendingRequests, dto.PendingRequestResponse{
			RequestID: contact.ID,
			Requester: userSummary(contact.Requester),
			CreatedAt: contact.CreatedAt,
		})
	}

	return &dto.ContactListResponse{
		Contacts:        contacts,
		PendingRequests: pendingRequests,
	}, nil
}
