package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Pair is one question/answer pair read from a bulk import file.
type Pair struct {
	Question string
	Answer   string
}

// ReadPairsFile reads a flat text file of alternating question/answer lines.
// Blank lines are skipped. An odd number of lines is an input-malformation
// error: nothing is returned so no partial insert can happen.
func ReadPairsFile(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Err(%s) > %w", path, err)
	}

	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("import file %s must contain pairs of lines (question followed by answer), got %d lines", path, len(lines))
	}

	pairs := make([]Pair, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		pairs = append(pairs, Pair{Question: lines[i], Answer: lines[i+1]})
	}
	return pairs, nil
}
