package bill

import (
	"context"
	"errors"

	"github.com/sayantan-2/splitbill/internal/group"
	"github.com/sayantan-2/splitbill/internal/notification"
	"github.com/sayantan-2/splitbill/internal/paymentrequest"
)

// Common errors
var (
	ErrBillNotFound       = errors.New("bill not found")
	ErrNotCreator         = errors.New("only the bill creator can perform this action")
	ErrBillFinalized      = errors.New("bill is already finalized")
	ErrNoItems            = errors.New("a bill needs at least one item")
	ErrNotGroupMember     = errors.New("all participants must be members of the bill's group")
	ErrHasPaymentRequests = errors.New("cannot delete a bill that issued payment requests")
)

// Service handles bill business logic
type Service struct {
	repo          *Repository
	groups        *group.Service
	requests      *paymentrequest.Service
	notifications *notification.Service
}

// NewService creates a new bill service with dependencies injected
func NewService(repo *Repository, groups *group.Service, requests *paymentrequest.Service, notifications *notification.Service) *Service {
	return &Service{
		repo:          repo,
		groups:        groups,
		requests:      requests,
		notifications: notifications,
	}
}

// Create validates the items, resolves and reconciles every split, and stores
// the bill as a draft. The full summary is computed up front so a bill with an
// unresolvable strategy is rejected before anything is written.
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateBillRequest) (*Bill, *Summary, error) {
	if len(req.Items) == 0 {
		return nil, nil, ErrNoItems
	}

	items := make([]*Item, len(req.Items))
	for i, ir := range req.Items {
		items[i] = ir.ToItem()
	}

	summary, err := Summarize(items)
	if err != nil {
		return nil, nil, err
	}

	if req.GroupID != nil {
		if err := s.checkParticipants(ctx, *req.GroupID, creatorID, summary); err != nil {
			return nil, nil, err
		}
	}

	bill, err := s.repo.Create(ctx, creatorID, req, items)
	if err != nil {
		return nil, nil, err
	}

	return bill, summary, nil
}

// GetByID retrieves a bill with its items and computed summary
func (s *Service) GetByID(ctx context.Context, id int64) (*Bill, *Summary, error) {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if bill == nil {
		return nil, nil, ErrBillNotFound
	}

	summary, err := Summarize(bill.Items)
	if err != nil {
		return nil, nil, err
	}

	return bill, summary, nil
}

// ListByGroupID retrieves bills for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Bill, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// ListByCreatorID retrieves bills created by a user
func (s *Service) ListByCreatorID(ctx context.Context, creatorID int64, page, perPage int) ([]*Bill, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByCreatorID(ctx, creatorID, perPage, offset)
}

// Delete removes a draft bill. Finalized bills issued payment requests and
// stay; their requests are cancelled individually, never deleted.
func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bill == nil {
		return ErrBillNotFound
	}
	if bill.CreatorID != actorID {
		return ErrNotCreator
	}
	if bill.Status == StatusFinalized {
		return ErrHasPaymentRequests
	}

	exists, err := s.requests.ExistsForBill(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrHasPaymentRequests
	}

	return s.repo.Delete(ctx, id)
}

// Finalize freezes a draft bill and issues one payment request per debtor:
// every participant other than the creator with a nonzero total owes the
// creator their share. The status flip is conditional on the bill still being
// a draft, so two concurrent finalizations cannot issue requests twice.
func (s *Service) Finalize(ctx context.Context, id, actorID int64) (*Bill, []*paymentrequest.PaymentRequest, error) {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if bill == nil {
		return nil, nil, ErrBillNotFound
	}
	if bill.CreatorID != actorID {
		return nil, nil, ErrNotCreator
	}

	summary, err := Summarize(bill.Items)
	if err != nil {
		return nil, nil, err
	}

	finalized, err := s.repo.FinalizeIfDraft(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !finalized {
		return nil, nil, ErrBillFinalized
	}
	bill.Status = StatusFinalized

	var issued []*paymentrequest.PaymentRequest
	for _, ps := range summary.Participants {
		if ps.ParticipantID == bill.CreatorID || !ps.Total.IsPositive() {
			continue
		}

		pr, err := s.requests.CreateForBill(ctx, ps.ParticipantID, bill.CreatorID, ps.Total, bill.CurrencyCode, bill.ID)
		if err != nil {
			return nil, nil, err
		}
		issued = append(issued, pr)

		_, _ = s.notifications.NotifyBillFinalized(ctx, ps.ParticipantID, bill.CreatorUsername, bill.Title, bill.ID)
	}

	return bill, issued, nil
}

// checkParticipants verifies the creator and every allocated participant
// belong to the bill's group.
func (s *Service) checkParticipants(ctx context.Context, groupID, creatorID int64, summary *Summary) error {
	ids := map[int64]struct{}{creatorID: {}}
	for _, ps := range summary.Participants {
		ids[ps.ParticipantID] = struct{}{}
	}

	for id := range ids {
		member, err := s.groups.IsMember(ctx, groupID, id)
		if err != nil {
			return err
		}
		if !member {
			return ErrNotGroupMember
		}
	}
	return nil
}
