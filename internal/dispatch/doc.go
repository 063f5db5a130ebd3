// Package dispatch provides the single queue through which every client state
// transition is applied.
//
// Actions run one at a time, in the order they were enqueued, on a goroutine
// owned by the Queue. Stores mutate their state only from inside actions, so no
// two transitions ever overlap. Blocking work (network calls) must happen
// outside an action; its result is applied by enqueuing a follow-up action.
package dispatch
