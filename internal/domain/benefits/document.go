package benefits

import (
	"strings"

	"github.com/benefits/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentKind classifies a review document
type DocumentKind string

const (
	DocumentKindIncomeProof    DocumentKind = "income_proof"
	DocumentKindResidencyProof DocumentKind = "residency_proof"
	DocumentKindInvoice        DocumentKind = "invoice"
	DocumentKindOther          DocumentKind = "other"
)

// Valid reports whether the document kind is a known value
func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentKindIncomeProof, DocumentKindResidencyProof, DocumentKindInvoice, DocumentKindOther:
		return true
	}
	return false
}

// ReviewDocument is the metadata record of a document attached to a benefit
// request. Only metadata is kept here; the file itself lives in external
// storage referenced by StorageKey.
type ReviewDocument struct {
	shared.ScopedAggregateRoot
	RequestID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        DocumentKind
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
	Verified    bool
}

// TableName returns the database table name
func (ReviewDocument) TableName() string {
	return "review_documents"
}

// NewReviewDocument creates a document metadata record for a request
func NewReviewDocument(requestID uuid.UUID, kind DocumentKind, fileName, contentType string, sizeBytes int64, storageKey string) (*ReviewDocument, error) {
	if requestID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUEST_ID", "Request ID cannot be empty")
	}
	if !kind.Valid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_KIND", "Unknown document kind")
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" || len(fileName) > 255 {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name must be 1-255 characters")
	}
	if sizeBytes <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be positive")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	return &ReviewDocument{
		ScopedAggregateRoot: shared.NewScopedAggregateRoot(),
		RequestID:           requestID,
		Kind:                kind,
		FileName:            fileName,
		ContentType:         contentType,
		SizeBytes:           sizeBytes,
		StorageKey:          storageKey,
	}, nil
}

// MarkVerified records that a caseworker has checked the document
func (d *ReviewDocument) MarkVerified() error {
	if d.Verified {
		return shared.NewDomainError("ALREADY_VERIFIED", "Document is already verified")
	}
	d.Verified = true
	d.IncrementVersion()
	return nil
}
