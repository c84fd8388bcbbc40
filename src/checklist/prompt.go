package checklist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator to pick one of choices. An empty answer
// selects def.
type Prompter interface {
	Select(ctx context.Context, question string, choices []string, def string) (string, error)
}

// DefaultPrompter answers every question with its default. It stands in
// for ConsolePrompter when nobody is at the terminal.
type DefaultPrompter struct{}

// Select implements Prompter.
func (DefaultPrompter) Select(_ context.Context, _ string, _ []string, def string) (string, error) {
	return def, nil
}

// ConsolePrompter reads answers line by line from In and writes questions to Out.
// Invalid answers are asked again.
type ConsolePrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewConsolePrompter creates a prompter over the given streams.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{In: in, Out: out}
}

// Select implements Prompter.
func (p *ConsolePrompter) Select(ctx context.Context, question string, choices []string, def string) (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}

	for {
		fmt.Fprintf(p.Out, "%s [%s] ", question, strings.Join(choices, ", "))

		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if input == "" {
			return def, nil
		}
		for _, c := range choices {
			if strings.EqualFold(input, c) {
				return c, nil
			}
		}
		fmt.Fprintf(p.Out, "Value %q is invalid\n", input)
	}
}

// readLine reads one trimmed line, giving up when ctx is cancelled.
func (p *ConsolePrompter) readLine(ctx context.Context) (string, error) {
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		input, err := p.reader.ReadString('\n')
		if err != nil && !(err == io.EOF && input != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-errChan:
		return "", fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		return input, nil
	}
}
