package metrics

import (
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile dumps everything in reg to path in the text exposition format,
// for pickup by a node_exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string, reg *prom.Registry) error {
	if path == "" || reg == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
