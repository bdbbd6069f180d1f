package paymentrequest

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sayantan-2/splitbill/internal/notification"
)

// Common errors
var (
	ErrRequestNotFound   = errors.New("payment request not found")
	ErrSamePayerPayee    = errors.New("payer and payee must be different users")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

// Service handles payment request business logic
type Service struct {
	repo          *Repository
	notifications *notification.Service
}

// NewService creates a new payment request service
func NewService(repo *Repository, notifications *notification.Service) *Service {
	return &Service{
		repo:          repo,
		notifications: notifications,
	}
}

// Create issues a manual money request. The caller is the payee: they are
// owed the amount and the payer is asked to respond.
func (s *Service) Create(ctx context.Context, payeeID int64, req *CreateRequest) (*PaymentRequest, error) {
	return s.create(ctx, req.PayerID, payeeID, req.Amount, req.CurrencyCode, req.Description, nil)
}

// CreateForBill issues a payment request for one debtor of a finalized bill.
func (s *Service) CreateForBill(ctx context.Context, payerID, payeeID int64, amount decimal.Decimal, currencyCode string, billID int64) (*PaymentRequest, error) {
	return s.create(ctx, payerID, payeeID, amount, currencyCode, nil, &billID)
}

func (s *Service) create(ctx context.Context, payerID, payeeID int64, amount decimal.Decimal, currencyCode string, description *string, billID *int64) (*PaymentRequest, error) {
	if payerID == payeeID {
		return nil, ErrSamePayerPayee
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	pr, err := s.repo.Create(ctx, payerID, payeeID, amount, currencyCode, description, billID)
	if err != nil {
		return nil, err
	}

	_, _ = s.notifications.NotifyRequestSent(ctx, pr.PayerID, pr.PayeeUsername,
		pr.Amount.StringFixed(2)+" "+pr.CurrencyCode, pr.ID)

	return pr, nil
}

// GetByID retrieves a payment request by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*PaymentRequest, error) {
	pr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, ErrRequestNotFound
	}
	return pr, nil
}

// ListByUserID retrieves all payment requests involving a user
func (s *Service) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*PaymentRequest, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// ExistsForBill reports whether any payment request references the bill
func (s *Service) ExistsForBill(ctx context.Context, billID int64) (bool, error) {
	return s.repo.ExistsForBill(ctx, billID)
}

// Transition applies a state-machine event on behalf of an actor. The
// authorization and legality checks run on an in-memory copy; the database
// update then re-checks the expected current status, so of two racing
// transitions only one lands and the loser sees ErrIllegalTransition.
func (s *Service) Transition(ctx context.Context, id int64, event Event, actorID int64) (*PaymentRequest, error) {
	pr, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := Next(pr.Status, event, pr.RoleOf(actorID))
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if next == StatusCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}

	updated, err := s.repo.TransitionStatus(ctx, id, pr.Status, next, completedAt)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Lost the race: someone else moved the request first.
		return nil, ErrIllegalTransition
	}

	s.notifyTransition(ctx, updated, event, actorID)
	return updated, nil
}

// UpdateDetails updates note and payment method. Allowed for either party
// from any non-terminal state; never changes status.
func (s *Service) UpdateDetails(ctx context.Context, id, actorID int64, req *UpdateDetailsRequest) (*PaymentRequest, error) {
	pr, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if pr.RoleOf(actorID) == RoleNone {
		return nil, ErrUnauthorized
	}
	if pr.Status.Terminal() {
		return nil, ErrIllegalTransition
	}

	updated, err := s.repo.UpdateDetails(ctx, id, req.Note, req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrRequestNotFound
	}
	return updated, nil
}

// ProjectForViewer returns the contextual status label for one participant.
func (s *Service) ProjectForViewer(ctx context.Context, id, viewerID int64) (string, error) {
	pr, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	role := pr.RoleOf(viewerID)
	if role == RoleNone {
		return "", ErrUnauthorized
	}
	return Project(pr.Status, role == RolePayee), nil
}

// notifyTransition tells the counterparty what just happened. Notification
// failures never fail the transition itself.
func (s *Service) notifyTransition(ctx context.Context, pr *PaymentRequest, event Event, actorID int64) {
	amount := pr.Amount.StringFixed(2) + " " + pr.CurrencyCode

	switch event {
	case EventAccept:
		_, _ = s.notifications.NotifyRequestAccepted(ctx, pr.PayeeID, pr.PayerUsername, pr.ID)
	case EventReject:
		_, _ = s.notifications.NotifyRequestRejected(ctx, pr.PayeeID, pr.PayerUsername, pr.ID)
	case EventCancel:
		_, _ = s.notifications.NotifyRequestCancelled(ctx, pr.PayerID, pr.PayeeUsername, pr.ID)
	case EventMarkPaid:
		_, _ = s.notifications.NotifyRequestPaid(ctx, pr.PayeeID, pr.PayerUsername, amount, pr.ID)
	case EventDispute:
		recipient := pr.PayerID
		counterpart := pr.PayeeUsername
		if actorID == pr.PayerID {
			recipient = pr.PayeeID
			counterpart = pr.PayerUsername
		}
		_, _ = s.notifications.NotifyRequestDisputed(ctx, recipient, counterpart, pr.ID)
	}
}
