package handler

import (
	"time"

	domain "github.com/benefits/backend/internal/domain/benefits"
	"github.com/google/uuid"
)

// =====================
// Document Request DTOs
// =====================

// AttachDocumentRequest represents the request body for attaching a review document
type AttachDocumentRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=income_proof residency_proof invoice other"`
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,gt=0"`
	StorageKey  string `json:"storage_key" binding:"required,max=500"`
}

// =====================
// Document Response DTOs
// =====================

// DocumentResponse represents review document data in responses
type DocumentResponse struct {
	ID          uuid.UUID `json:"id"`
	RequestID   uuid.UUID `json:"request_id"`
	Kind        string    `json:"kind"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StorageKey  string    `json:"storage_key"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toDocumentResponse(doc *domain.ReviewDocument) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID,
		RequestID:   doc.RequestID,
		Kind:        string(doc.Kind),
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		StorageKey:  doc.StorageKey,
		Verified:    doc.Verified,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func toDocumentResponses(docs []domain.ReviewDocument) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = toDocumentResponse(&docs[i])
	}
	return out
}
