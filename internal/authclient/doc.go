// Package authclient provides the HTTP implementation of domain.Verifier and
// domain.TaskSource used by the TaskFlow client.
//
// Supported operations:
//   - Logging in (POST /api/auth/login), returning the identity and a bearer token.
//   - Registering an account (POST /api/auth/register).
//   - Fetching the signed-in user's tasks (GET /api/tasks).
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx responses become *domain.AuthError with Kind rejected and
// the server's "message" field, when it sent one; transport failures become
// Kind unavailable with no user-facing message.
package authclient
