package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errTooManyInvalid means a field was answered wrongly maxAttempts times in a row.
var errTooManyInvalid = errors.New("too many invalid inputs")

// readLine reads a line from the reader, trimming line endings. A final line
// without a newline is returned together with io.EOF.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			line = strings.TrimRight(line, "\r\n")
			if line != "" {
				return line, nil
			}
			return "", io.EOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptLine prints label on its own line and reads the reply.
func promptLine(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintln(out, label)
	return readLine(reader)
}

// promptValid repeats label until parse accepts the reply or maxAttempts
// replies were rejected. invalidMsg is printed after each rejection.
func promptValid[T any](reader *bufio.Reader, out io.Writer, label, invalidMsg string, maxAttempts int, parse func(string) (T, error)) (T, error) {
	var zero T
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		line, err := promptLine(reader, out, label)
		if err != nil {
			return zero, err
		}
		value, err := parse(line)
		if err == nil {
			return value, nil
		}
		fmt.Fprintln(out, invalidMsg)
	}
	return zero, errTooManyInvalid
}

func parseInt(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

func parseChoiceNumber(count int) func(string) (int, error) {
	return func(value string) (int, error) {
		number, err := parseInt(value)
		if err != nil {
			return 0, err
		}
		if number < 1 || number > count {
			return 0, fmt.Errorf("choice %d out of range 1-%d", number, count)
		}
		return number, nil
	}
}

func parseRequired(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", errors.New("value is required")
	}
	return value, nil
}
