package system

import (
	"os"
	"strconv"
	"strings"

	"taskflow/internal/domain"
)

// PrefersDarkEnv explicitly states the colour-scheme preference ("true"/"false").
const PrefersDarkEnv = "TASKFLOW_PREFERS_DARK"

// EnvSignal derives "prefers dark" from environment variables. The explicit
// TASKFLOW_PREFERS_DARK wins; otherwise the terminal's COLORFGBG background
// index is consulted (0-6 and 8 are dark backgrounds).
type EnvSignal struct {
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// PrefersDark implements domain.SchemeSignal.
func (s EnvSignal) PrefersDark() bool {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if raw := strings.TrimSpace(getenv(PrefersDarkEnv)); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return darkBackground(getenv("COLORFGBG"))
}

// darkBackground parses "fg;bg" or "fg;extra;bg".
func darkBackground(colorfgbg string) bool {
	if colorfgbg == "" {
		return false
	}
	parts := strings.Split(colorfgbg, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false
	}
	return (bg >= 0 && bg <= 6) || bg == 8
}

// Fixed is a SchemeSignal with a constant answer. The color_scheme setting
// builds one when it is "light" or "dark".
type Fixed bool

func (f Fixed) PrefersDark() bool { return bool(f) }

var (
	_ domain.SchemeSignal = EnvSignal{}
	_ domain.SchemeSignal = Fixed(false)
)
