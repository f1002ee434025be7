package identity

import (
	"context"

	"github.com/benefits/backend/internal/domain/shared"
	"github.com/benefits/backend/internal/infrastructure/persistence/scope"
)

// requireAdministrator checks that the calling context carries global scope.
// Only administrators are issued GLOBAL tokens, so the installed scope mode
// doubles as the role gate for identity administration; callers under UNIT or
// OWN scope, or with no scope installed at all, are denied.
func requireAdministrator(ctx context.Context) error {
	sc, ok := scope.FromContext(ctx)
	if !ok || sc.Mode != scope.ModeGlobal {
		return shared.NewDomainError("FORBIDDEN", "Administrator privileges required")
	}
	return nil
}
