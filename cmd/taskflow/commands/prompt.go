package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/ui"
	"taskflow/internal/validate"
)

// prompter reads answers line by line. Input is echoed by the terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// line prints label and returns the next line without its newline.
func (p *prompter) line(label string) (string, error) {
	if label != "" {
		fmt.Fprint(p.out, label)
	}
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// secret is line returned as bytes so the caller can wipe it.
func (p *prompter) secret(label string) ([]byte, error) {
	s, err := p.line(label)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// printFieldErrors prints form problems in field order, or reports false when
// err is not a form error.
func printFieldErrors(w io.Writer, pal *ui.Palette, err error) bool {
	var fe validate.FieldErrors
	if !errors.As(err, &fe) {
		return false
	}
	for _, f := range []string{validate.FieldUsername, validate.FieldPassword, validate.FieldConfirmPassword} {
		if msg, ok := fe[f]; ok {
			fmt.Fprintln(w, pal.Paint(ui.RoleError, "  "+msg))
		}
	}
	return true
}
