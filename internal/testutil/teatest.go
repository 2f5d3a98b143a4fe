// Package testutil runs bubbletea programs with fake input for e2e tests.
package testutil

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TestProgram wraps a Bubble Tea program for testing
type TestProgram struct {
	program *tea.Program
	output  *syncBuffer
	input   *fakeInput
	done    chan struct{}
	t       *testing.T
}

// syncBuffer lets the test read what the program goroutine writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// fakeInput implements io.Reader for simulating keyboard input
type fakeInput struct {
	data chan byte
}

func newFakeInput() *fakeInput {
	return &fakeInput{data: make(chan byte, 1024)}
}

func (f *fakeInput) Read(p []byte) (n int, err error) {
	select {
	case b := <-f.data:
		p[0] = b
		return 1, nil
	case <-time.After(50 * time.Millisecond):
		return 0, io.EOF
	}
}

// NewTestProgram starts model with controlled I/O. The program is stopped
// when the test ends.
func NewTestProgram(t *testing.T, model tea.Model, width, height int) *TestProgram {
	t.Helper()

	output := &syncBuffer{}
	input := newFakeInput()

	p := tea.NewProgram(
		model,
		tea.WithInput(input),
		tea.WithOutput(output),
	)

	tp := &TestProgram{
		program: p,
		output:  output,
		input:   input,
		done:    make(chan struct{}),
		t:       t,
	}

	go func() {
		defer close(tp.done)
		if _, err := p.Run(); err != nil {
			t.Logf("Program error: %v", err)
		}
	}()
	t.Cleanup(tp.Quit)

	// Give the program time to start
	time.Sleep(50 * time.Millisecond)

	tp.Send(tea.WindowSizeMsg{Width: width, Height: height})

	return tp
}

// Send sends a message to the program
func (tp *TestProgram) Send(msg tea.Msg) {
	tp.program.Send(msg)
	time.Sleep(50 * time.Millisecond) // Give time for message to process
}

// Type simulates typing a string
func (tp *TestProgram) Type(s string) {
	for _, r := range s {
		tp.Send(tea.KeyMsg{
			Type:  tea.KeyRunes,
			Runes: []rune{r},
		})
	}
}

// SendKey sends a specific key press
func (tp *TestProgram) SendKey(key tea.KeyType) {
	tp.Send(tea.KeyMsg{Type: key})
}

// Output returns everything rendered so far
func (tp *TestProgram) Output() string {
	return tp.output.String()
}

// ResetOutput drops the rendered output so later waits only see new frames.
func (tp *TestProgram) ResetOutput() {
	tp.output.Reset()
}

// WaitForOutput waits for specific text to appear in output
func (tp *TestProgram) WaitForOutput(needle string, timeout time.Duration) bool {
	tp.t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(tp.Output(), needle) {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return false
}

// AssertContains checks if output contains expected text
func (tp *TestProgram) AssertContains(expected string) {
	tp.t.Helper()

	output := tp.Output()
	if !strings.Contains(output, expected) {
		tp.t.Errorf("Output does not contain %q\nGot:\n%s", expected, output)
	}
}

// AssertNotContains checks if output does NOT contain text
func (tp *TestProgram) AssertNotContains(notExpected string) {
	tp.t.Helper()

	output := tp.Output()
	if strings.Contains(output, notExpected) {
		tp.t.Errorf("Output should not contain %q\nGot:\n%s", notExpected, output)
	}
}

// Quit stops the program and waits for it to exit
func (tp *TestProgram) Quit() {
	tp.program.Quit()
	select {
	case <-tp.done:
	case <-time.After(time.Second):
		tp.t.Log("Program did not stop in time")
	}
}
