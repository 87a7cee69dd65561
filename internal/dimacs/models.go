package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseModels reads a file of DIMACS solution lines (as WriteModel
// produces), one model per line, each a sequence of signed integers
// terminated by 0. It is used by golden tests to load expected models
// without hand-encoding them as Go literals.
func ParseModels(filename string) ([][]bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseModelsReader(file)
}

// ParseModelsReader is ParseModels over an already-open reader, for
// golden fixtures loaded via go:embed rather than a filesystem path.
func ParseModelsReader(r io.Reader) ([][]bool, error) {
	var models [][]bool
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == 'c' {
			continue
		}

		literals := strings.Fields(line)
		model := make([]bool, 0, len(literals))

		for _, ls := range literals {
			if ls == "0" {
				continue
			}
			l, err := strconv.Atoi(ls)
			if err != nil {
				return nil, fmt.Errorf("error parsing literal %s: %w", ls, err)
			}
			model = append(model, l > 0)
		}

		models = append(models, model)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return models, nil
}
