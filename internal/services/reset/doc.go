// Package reset implements logout as one compound command: session teardown
// and dependent-state teardown happen inside a single dispatch action, and
// navigation runs only after both have completed. Preferences are never
// touched.
package reset
