package benefits

import (
	"context"

	"github.com/benefits/backend/internal/domain/benefits"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/benefits/backend/internal/infrastructure/persistence/scope"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentService manages the documents attached to benefit requests.
// Documents inherit their visibility from the scoped store, not from the
// request they belong to, so attaching always goes through a scoped lookup
// of the request first.
type DocumentService struct {
	documents *scope.Store[benefits.ReviewDocument]
	requests  *scope.Store[benefits.BenefitRequest]
	logger    *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documents *scope.Store[benefits.ReviewDocument],
	requests *scope.Store[benefits.BenefitRequest],
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		documents: documents,
		requests:  requests,
		logger:    logger,
	}
}

// AttachDocument records document metadata for a request. The request lookup
// is scoped, so a caller cannot attach documents to requests they cannot see.
func (s *DocumentService) AttachDocument(ctx context.Context, input AttachDocumentInput) (*benefits.ReviewDocument, error) {
	request, err := s.requests.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if !request.IsOpen() {
		return nil, shared.NewDomainError("INVALID_STATE", "Documents can only be attached to open requests")
	}

	document, err := benefits.NewReviewDocument(
		input.RequestID,
		input.Kind,
		input.FileName,
		input.ContentType,
		input.SizeBytes,
		input.StorageKey,
	)
	if err != nil {
		return nil, err
	}

	if err := s.documents.Create(ctx, document); err != nil {
		s.logger.Error("Failed to attach document", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to attach document")
	}

	s.logger.Info("Document attached",
		zap.String("document_id", document.ID.String()),
		zap.String("request_id", input.RequestID.String()),
		zap.String("kind", string(input.Kind)))

	return document, nil
}

// GetDocument retrieves a document visible to the caller
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*benefits.ReviewDocument, error) {
	return s.documents.FindByID(ctx, id)
}

// ListDocuments returns the documents of a request visible to the caller
func (s *DocumentService) ListDocuments(ctx context.Context, requestID uuid.UUID) ([]benefits.ReviewDocument, error) {
	query, err := s.documents.Query(ctx)
	if err != nil {
		return nil, err
	}

	return query.
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find()
}

// VerifyDocument marks a document as checked by a caseworker
func (s *DocumentService) VerifyDocument(ctx context.Context, id uuid.UUID) (*benefits.ReviewDocument, error) {
	document, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := document.MarkVerified(); err != nil {
		return nil, err
	}

	if err := s.documents.Update(ctx, document); err != nil {
		s.logger.Error("Failed to verify document", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Document verified", zap.String("document_id", id.String()))

	return document, nil
}

// RemoveDocument deletes document metadata. Verified documents are part of
// the decision record and cannot be removed.
func (s *DocumentService) RemoveDocument(ctx context.Context, id uuid.UUID) error {
	document, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if document.Verified {
		return shared.NewDomainError("INVALID_STATE", "Verified documents cannot be removed")
	}

	return s.documents.Delete(ctx, id)
}
