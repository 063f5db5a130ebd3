// Package tasks caches the signed-in user's task list. It is dependent state:
// the reset coordinator clears it on logout so no task from one session stays
// visible to the next.
package tasks
