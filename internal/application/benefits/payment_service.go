package benefits

import (
	"context"

	"github.com/benefits/backend/internal/domain/benefits"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/benefits/backend/internal/infrastructure/persistence/scope"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService issues and settles payment orders for approved requests.
// Clearing an order is the step that moves the request itself to paid.
type PaymentService struct {
	payments *scope.Store[benefits.PaymentOrder]
	requests *scope.Store[benefits.BenefitRequest]
	logger   *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	payments *scope.Store[benefits.PaymentOrder],
	requests *scope.Store[benefits.BenefitRequest],
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		requests: requests,
		logger:   logger,
	}
}

// IssuePayment creates a pending payment order over the approved amount
func (s *PaymentService) IssuePayment(ctx context.Context, input IssuePaymentInput) (*benefits.PaymentOrder, error) {
	request, err := s.requests.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if request.Status != benefits.RequestStatusApproved {
		return nil, shared.NewDomainError("INVALID_STATE", "Only approved requests can be paid")
	}
	if request.ApprovedAmount == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Request has no approved amount")
	}

	query, err := s.payments.Query(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := query.
		Where("request_id = ?", input.RequestID).
		Where("status = ?", benefits.PaymentStatusPending).
		Count()
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, shared.NewDomainError("PAYMENT_PENDING", "Request already has a pending payment order")
	}

	order, err := benefits.NewPaymentOrder(input.RequestID, *request.ApprovedAmount, input.IBAN)
	if err != nil {
		return nil, err
	}

	if err := s.payments.Create(ctx, order); err != nil {
		s.logger.Error("Failed to issue payment order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue payment order")
	}

	s.logger.Info("Payment order issued",
		zap.String("order_id", order.ID.String()),
		zap.String("request_id", input.RequestID.String()),
		zap.String("amount", order.Amount.String()))

	return order, nil
}

// GetPayment retrieves a payment order visible to the caller
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*benefits.PaymentOrder, error) {
	return s.payments.FindByID(ctx, id)
}

// ListPayments returns the payment orders visible to the caller
func (s *PaymentService) ListPayments(ctx context.Context, filter shared.Filter) (*shared.Paginated[benefits.PaymentOrder], error) {
	orders, err := s.payments.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list payment orders", zap.Error(err))
		return nil, err
	}

	total, err := s.payments.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ClearPayment settles a pending order and marks the request paid
func (s *PaymentService) ClearPayment(ctx context.Context, id uuid.UUID) (*benefits.PaymentOrder, error) {
	order, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.MarkCleared(); err != nil {
		return nil, err
	}

	if err := s.payments.Update(ctx, order); err != nil {
		s.logger.Error("Failed to clear payment order", zap.Error(err))
		return nil, err
	}

	request, err := s.requests.FindByID(ctx, order.RequestID)
	if err != nil {
		return nil, err
	}
	if err := request.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.requests.Update(ctx, request); err != nil {
		s.logger.Error("Failed to mark request paid",
			zap.String("request_id", request.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Payment order cleared",
		zap.String("order_id", id.String()),
		zap.String("request_id", order.RequestID.String()))

	return order, nil
}

// CancelPayment voids a pending order. The request stays approved, so a
// corrected order can be issued afterwards.
func (s *PaymentService) CancelPayment(ctx context.Context, id uuid.UUID, note string) (*benefits.PaymentOrder, error) {
	order, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(note); err != nil {
		return nil, err
	}

	if err := s.payments.Update(ctx, order); err != nil {
		s.logger.Error("Failed to cancel payment order", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Payment order cancelled", zap.String("order_id", id.String()))

	return order, nil
}
