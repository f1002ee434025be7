package benefits

import (
	"context"

	"github.com/benefits/backend/internal/domain/benefits"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/benefits/backend/internal/infrastructure/persistence/scope"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestService drives the benefit request workflow. Every read and write
// goes through the scoped store, so a resident only ever touches their own
// requests and a caseworker only those of their unit; the service itself
// never re-checks visibility.
type RequestService struct {
	store  *scope.Store[benefits.BenefitRequest]
	logger *zap.Logger
}

// NewRequestService creates a new request service
func NewRequestService(store *scope.Store[benefits.BenefitRequest], logger *zap.Logger) *RequestService {
	return &RequestService{
		store:  store,
		logger: logger,
	}
}

// CreateRequest files a new draft request. Ownership is stamped from the
// caller's scope context by the store.
func (s *RequestService) CreateRequest(ctx context.Context, input CreateRequestInput) (*benefits.BenefitRequest, error) {
	request, err := benefits.NewBenefitRequest(input.Type, input.Summary, input.RequestedAmount)
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, request); err != nil {
		s.logger.Error("Failed to create benefit request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create request")
	}

	s.logger.Info("Benefit request created",
		zap.String("request_id", request.ID.String()),
		zap.String("type", string(request.Type)))

	return request, nil
}

// GetRequest retrieves a request visible to the caller
func (s *RequestService) GetRequest(ctx context.Context, id uuid.UUID) (*benefits.BenefitRequest, error) {
	return s.store.FindByID(ctx, id)
}

// ListRequests returns the requests visible to the caller, optionally
// narrowed by status and type
func (s *RequestService) ListRequests(ctx context.Context, input ListRequestsInput) (*shared.Paginated[benefits.BenefitRequest], error) {
	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = map[string]interface{}{}
	}
	if input.Status != "" {
		filter.Filters["status"] = input.Status
	}
	if input.Type != "" {
		filter.Filters["type"] = input.Type
	}

	requests, err := s.store.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list benefit requests", zap.Error(err))
		return nil, err
	}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count benefit requests", zap.Error(err))
		return nil, err
	}

	page := shared.NewPaginated(requests, total, filter.Page, filter.PageSize)
	return &page, nil
}

// SubmitRequest moves a draft into the review queue
func (s *RequestService) SubmitRequest(ctx context.Context, id uuid.UUID) (*benefits.BenefitRequest, error) {
	return s.transition(ctx, id, func(r *benefits.BenefitRequest) error {
		return r.Submit()
	})
}

// StartReview claims a submitted request for review
func (s *RequestService) StartReview(ctx context.Context, id uuid.UUID) (*benefits.BenefitRequest, error) {
	return s.transition(ctx, id, func(r *benefits.BenefitRequest) error {
		return r.StartReview()
	})
}

// ApproveRequest grants a request under review
func (s *RequestService) ApproveRequest(ctx context.Context, input DecideRequestInput) (*benefits.BenefitRequest, error) {
	request, err := s.transition(ctx, input.RequestID, func(r *benefits.BenefitRequest) error {
		return r.Approve(input.Amount, input.Note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Benefit request approved",
		zap.String("request_id", request.ID.String()),
		zap.String("approved_amount", input.Amount.String()))

	return request, nil
}

// RejectRequest denies a request under review
func (s *RequestService) RejectRequest(ctx context.Context, input DecideRequestInput) (*benefits.BenefitRequest, error) {
	request, err := s.transition(ctx, input.RequestID, func(r *benefits.BenefitRequest) error {
		return r.Reject(input.Note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Benefit request rejected", zap.String("request_id", request.ID.String()))

	return request, nil
}

// DeleteRequest removes a request. Only drafts can be deleted; anything that
// entered the review queue stays on record.
func (s *RequestService) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	request, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if request.Status != benefits.RequestStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft requests can be deleted")
	}

	return s.store.Delete(ctx, id)
}

// StatusBreakdown aggregates the caller's visible requests per status. A
// caseworker gets their unit's review load, an administrator the whole
// program.
func (s *RequestService) StatusBreakdown(ctx context.Context) ([]StatusBreakdown, error) {
	query, err := s.store.Query(ctx)
	if err != nil {
		return nil, err
	}

	var rows []StatusBreakdown
	err = query.
		Select("status, COUNT(*) AS count, SUM(requested_amount) AS total").
		Group("status").
		Order("status ASC").
		Scan(&rows)
	if err != nil {
		s.logger.Error("Failed to aggregate request statuses", zap.Error(err))
		return nil, err
	}

	return rows, nil
}

// ExportRequests returns every request in the program regardless of row
// scope. Only callers holding global scope may run it; anyone else is denied
// before the escape hatch is touched. The export reason travels with the
// context and lands in the audit log next to the bypass entry.
func (s *RequestService) ExportRequests(ctx context.Context, input ExportRequestsInput) ([]benefits.BenefitRequest, error) {
	sc, err := scope.Require(ctx)
	if err != nil || sc.Mode != scope.ModeGlobal {
		if err == nil {
			s.logger.Warn("Program-wide export denied",
				zap.String("caller_id", sc.CallerID.String()),
				zap.String("mode", string(sc.Mode)))
		}
		return nil, shared.NewDomainError("FORBIDDEN", "Program-wide export requires global scope")
	}

	if input.Reason == "" {
		return nil, shared.NewDomainError("MISSING_REASON", "An export requires a reason")
	}

	ctx = scope.WithBypassReason(ctx, input.Reason)

	requests, err := s.store.FindAllUnscoped(ctx, input.Filter)
	if err != nil {
		s.logger.Error("Failed to export benefit requests", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Benefit requests exported",
		zap.Int("count", len(requests)),
		zap.String("reason", input.Reason))

	return requests, nil
}

func (s *RequestService) transition(ctx context.Context, id uuid.UUID, fn func(*benefits.BenefitRequest) error) (*benefits.BenefitRequest, error) {
	request, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(request); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, request); err != nil {
		s.logger.Error("Failed to update benefit request",
			zap.String("request_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	return request, nil
}
