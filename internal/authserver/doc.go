// Package authserver is the development TaskFlow API served by taskflowd.
//
// HTTP API
//
//	POST /api/auth/register {"username","password"}
//	    201 {"user":{"id","username"}}; 409 when the username is taken,
//	    400 when a field is missing.
//
//	POST /api/auth/login {"username","password"}
//	    200 {"user":{"id","username"},"token"}; 401 on a bad pair.
//
//	GET /api/tasks (Authorization: Bearer <token>)
//	    200 [{"id","title","done"}] for the token's user.
//
//	GET /metrics
//	    Prometheus exposition of the server counters.
//
// Users live in a SQLite table with bcrypt password hashes. Bearer tokens and
// task lists are held in memory and lost on exit. Every failure body is
// {"message": "..."} so clients can show it verbatim.
package authserver
