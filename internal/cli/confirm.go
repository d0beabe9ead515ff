package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// readLine reads one line, returning early if ctx is canceled. The reading
// goroutine finishes on its own once input arrives.
func readLine(ctx context.Context, r *bufio.Reader) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		value, err := r.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.value != "") {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// Confirm asks the operator to type the expected word before an irreversible
// step. Anything else, including end of input, declines.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, prompt, expected string) (bool, error) {
	if _, err := fmt.Fprint(out, FormatPrompt(fmt.Sprintf("%s Type %q to continue", prompt, expected))); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := readLine(ctx, bufio.NewReader(in))
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return answer == expected, nil
}
