// Package memzero wipes secrets held in byte slices.
package memzero

import "crypto/subtle"

// Zero overwrites every slice in bs with zeros. Nil and empty slices are skipped.
func Zero(bs ...[]byte) {
	for _, b := range bs {
		if len(b) == 0 {
			continue
		}
		subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
	}
}
