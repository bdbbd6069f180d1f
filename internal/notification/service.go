package notification

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetByID retrieves a notification by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Notification, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

// ListByRecipientID retrieves notifications for a user
func (s *Service) ListByRecipientID(ctx context.Context, recipientID int64, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
}

// MarkAsRead marks a notification as read
func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// Helper methods for creating specific notification types

// NotifyRequestSent tells the payer someone is asking them for money
func (s *Service) NotifyRequestSent(ctx context.Context, payerID int64, payeeName, amount string, requestID int64) (*Notification, error) {
	message := payeeName + " requested " + amount + " from you"
	entityType := EntityPaymentRequest
	return s.repo.Create(ctx, payerID, message, &entityType, &requestID)
}

// NotifyRequestAccepted tells the payee their request was accepted
func (s *Service) NotifyRequestAccepted(ctx context.Context, payeeID int64, payerName string, requestID int64) (*Notification, error) {
	message := payerName + " accepted your payment request"
	entityType := EntityPaymentRequest
	return s.repo.Create(ctx, payeeID, message, &entityType, &requestID)
}

// NotifyRequestRejected tells the payee their request was declined
func (s *Service) NotifyRequestRejected(ctx context.Context, payeeID int64, payerName string, requestID int64) (*Notification, error) {
	message := payerName + " declined your payment request"
	entityType := EntityPaymentRequest
	return s.repo.Create(ctx, payeeID, message, &entityType, &requestID)
}

// NotifyRequestCancelled tells the payer the request was withdrawn
func (s *Service) NotifyRequestCancelled(ctx context.Context, payerID int64, payeeName string, requestID int64) (*Notification, error) {
	message := payeeName + " cancelled their payment request"
	entityType := EntityPaymentRequest
	return s.repo.Create(ctx, payerID, message, &entityType, &requestID)
}

// NotifyRequestPaid tells the payee the payer says they paid
func (s *Service) NotifyRequestPaid(ctx context.Context, payeeID int64, payerName, amount string, requestID int64) (*Notification, error) {
	message := payerName + " paid you " + amount
	entityType := EntityPaymentRequest
	return s.repo.Create(ctx, payeeID, message, &entityType, &requestID)
}

// NotifyRequestDisputed tells the other party the payment is under dispute
func (s *Service) NotifyRequestDisputed(ctx context.Context, recipientID int64, disputerName string, requestID int64) (*Notification, error) {
	message := disputerName + " disputed a completed payment"
	entityType := EntityPaymentRequest
	return s.repo.Create(ctx, recipientID, message, &entityType, &requestID)
}

// NotifyBillFinalized tells a participant they owe money on a finalized bill
func (s *Service) NotifyBillFinalized(ctx context.Context, recipientID int64, creatorName, billTitle string, billID int64) (*Notification, error) {
	message := creatorName + " finalized \"" + billTitle + "\" and you owe a share"
	entityType := EntityBill
	return s.repo.Create(ctx, recipientID, message, &entityType, &billID)
}
