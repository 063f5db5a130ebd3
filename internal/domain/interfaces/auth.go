package interfaces

import (
	"context"

	domaintypes "taskflow/internal/domain/types"
)

// Verifier is the remote credential-verification service. Failures should be
// *domaintypes.AuthError so a user-facing message can be extracted.
type Verifier interface {
	Login(ctx context.Context, creds domaintypes.Credentials) (domaintypes.Identity, error)
	Register(ctx context.Context, creds domaintypes.Credentials) (domaintypes.Identity, error)
}

// TaskSource fetches the user-scoped task list.
type TaskSource interface {
	FetchTasks(ctx context.Context, id domaintypes.Identity) ([]domaintypes.Task, error)
}
