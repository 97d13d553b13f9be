package snake

import (
	"bytes"
	"strings"
	"testing"
)

func TestNopCloser(t *testing.T) {
	var buf bytes.Buffer
	w := NopCloser(&buf)
	if _, err := w.Write([]byte("hi")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := buf.String(); got != "hi" {
		t.Fatalf("got %q, want %q", got, "hi")
	}
}

func TestConfirm(t *testing.T) {
	tests := map[string]struct {
		input string
		want  bool
	}{
		"yes":   {input: "y\n", want: true},
		"no":    {input: "n\n", want: false},
		"empty": {input: "\n", want: false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm("Sure", strings.NewReader(tc.input), &out)
			if err != nil {
				t.Fatalf("Confirm() = %v", err)
			}
			if got != tc.want {
				t.Fatalf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	var out bytes.Buffer
	got, err := Text("Title:", nil, strings.NewReader("  read more books \n"), &out)
	if err != nil {
		t.Fatalf("Text() = %v", err)
	}
	if got != "read more books" {
		t.Fatalf("Text() = %q", got)
	}
}

func TestNumber(t *testing.T) {
	var out bytes.Buffer
	got, err := Number("Target", 30, strings.NewReader("7\n"), &out)
	if err != nil || got != 7 {
		t.Fatalf("Number(7) = %d, %v", got, err)
	}

	got, err = Number("Target", 30, strings.NewReader("\n"), &out)
	if err != nil || got != 30 {
		t.Fatalf("Number(empty) = %d, %v, want the default", got, err)
	}

	// Invalid input is never accepted; the reader runs dry instead.
	if _, err := Number("Target", 30, strings.NewReader("many\n"), &out); err == nil {
		t.Fatal("Number(many) succeeded")
	}
}

func TestChooseFirstItem(t *testing.T) {
	var out bytes.Buffer
	got, err := Choose("Type", []string{"numeric", "habit", "weekly"}, strings.NewReader("\n"), &out)
	if err != nil {
		t.Fatalf("Choose() = %v", err)
	}
	if got != "numeric" {
		t.Fatalf("Choose() = %q, want the first item", got)
	}
}
