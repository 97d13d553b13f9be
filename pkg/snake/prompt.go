// Package snake wraps promptui for the few interactive questions lyfocus
// asks on the terminal.
package snake

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }} ",
	Valid:   "{{ . | green }} ",
	Invalid: "{{ . | red }} ",
	Success: "{{ . | bold }} ",
}

// Confirm asks a yes/no question. Anything but yes, including an aborted
// prompt, is a no.
func Confirm(label string, in io.Reader, out io.Writer) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(in),
		Stdout:    NopCloser(out),
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Text reads one line. validate may be nil.
func Text(label string, validate func(string) error, in io.Reader, out io.Writer) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(in),
		Stdout:    NopCloser(out),
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// Number reads a non-negative integer. An empty answer returns def.
func Number(label string, def int, in io.Reader, out io.Writer) (int, error) {
	validate := func(input string) error {
		if strings.TrimSpace(input) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || n < 0 {
			return errors.New("enter a whole number")
		}
		return nil
	}
	result, err := Text(label+" ["+strconv.Itoa(def)+"]", validate, in, out)
	if err != nil || result == "" {
		return def, err
	}
	return strconv.Atoi(result)
}

// Choose picks one of items and returns it.
func Choose(label string, items []string, in io.Reader, out io.Writer) (string, error) {
	prompt := promptui.Select{
		HideHelp: true,
		Label:    label,
		Items:    items,
		Size:     10,
		Searcher: func(input string, index int) bool {
			name := strings.ReplaceAll(strings.ToLower(items[index]), " ", "")
			input = strings.ReplaceAll(strings.ToLower(input), " ", "")
			return strings.Contains(name, input)
		},
		Stdin:  io.NopCloser(in),
		Stdout: NopCloser(out),
	}
	_, result, err := prompt.Run()
	return result, err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser turns w into the io.WriteCloser promptui wants.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
