package benefits

import (
	"context"
	"sync"
	"testing"

	"github.com/benefits/backend/internal/domain/benefits"
	"github.com/benefits/backend/internal/infrastructure/audit"
	"github.com/benefits/backend/internal/infrastructure/persistence/scope"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type captureRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *captureRecorder) Record(_ context.Context, entry audit.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *captureRecorder) Entries() []audit.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Entry(nil), r.entries...)
}

type testServices struct {
	requests  *RequestService
	documents *DocumentService
	payments  *PaymentService
	recorder  *captureRecorder
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&benefits.BenefitRequest{}, &benefits.ReviewDocument{}, &benefits.PaymentOrder{})
	require.NoError(t, err)

	recorder := &captureRecorder{}
	requestStore := scope.NewStore[benefits.BenefitRequest](db,
		scope.WithAuditRecorder(recorder),
		scope.WithQueryFields(map[string]bool{"status": true, "type": true}),
		scope.WithSearchFields([]string{"summary"}))
	documentStore := scope.NewStore[benefits.ReviewDocument](db,
		scope.WithAuditRecorder(recorder),
		scope.WithQueryFields(map[string]bool{"request_id": true, "kind": true, "verified": true}))
	paymentStore := scope.NewStore[benefits.PaymentOrder](db,
		scope.WithAuditRecorder(recorder),
		scope.WithQueryFields(map[string]bool{"status": true, "request_id": true}))

	log := zap.NewNop()
	return &testServices{
		requests:  NewRequestService(requestStore, log),
		documents: NewDocumentService(documentStore, requestStore, log),
		payments:  NewPaymentService(paymentStore, requestStore, log),
		recorder:  recorder,
	}
}

func ownCtx(t *testing.T, callerID uuid.UUID) context.Context {
	t.Helper()
	sc, err := scope.New(scope.ModeOwn, callerID, uuid.Nil)
	require.NoError(t, err)
	return scope.Install(context.Background(), sc)
}

func unitCtx(t *testing.T, callerID, unitID uuid.UUID) context.Context {
	t.Helper()
	sc, err := scope.New(scope.ModeUnit, callerID, unitID)
	require.NoError(t, err)
	return scope.Install(context.Background(), sc)
}

func globalCtx(t *testing.T, callerID uuid.UUID) context.Context {
	t.Helper()
	sc, err := scope.New(scope.ModeGlobal, callerID, uuid.Nil)
	require.NoError(t, err)
	return scope.Install(context.Background(), sc)
}
