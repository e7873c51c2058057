package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bilingual-export/internal/format"
)

// StaticPicker returns a fixed path, typically a command-line argument.
type StaticPicker string

func (p StaticPicker) Pick() (string, error) {
	if strings.TrimSpace(string(p)) == "" {
		return "", ErrNoSelection
	}
	return string(p), nil
}

// PromptPicker asks for a path on Out and reads one line from In. An empty
// answer means no selection.
type PromptPicker struct {
	In  io.Reader
	Out io.Writer
}

func (p *PromptPicker) Pick() (string, error) {
	fmt.Fprintf(p.Out, "Translation file (%s): ", strings.Join(format.Extensions(format.Unknown), " "))

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read path: %w", err)
	}

	path := strings.TrimSpace(line)
	// Paths dragged into a terminal often arrive quoted.
	path = strings.Trim(path, `"'`)
	if path == "" {
		return "", ErrNoSelection
	}
	return path, nil
}
