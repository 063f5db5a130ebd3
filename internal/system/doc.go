// Package system reads ambient preferences from the environment the client
// runs in.
package system
