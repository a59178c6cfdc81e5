package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// RunScript executes the lines of a script file as if they had been typed at
// the shell prompt. Blank lines and lines starting with "#" are skipped, and
// a .quit command stops execution early.
func RunScript(out io.Writer, path string, options Options) error {
	if err := InitializeServices(options.TestMode); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if ProcessInput(out, line) {
			break
		}
	}
	return scanner.Err()
}
