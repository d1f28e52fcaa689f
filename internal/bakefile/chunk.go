package bakefile

import "strings"

// Chunk is a contiguous region of document lines: one declaration line plus
// everything up to (exclusive) the next declaration line or end of document.
// Chunks are owned by the Bakefile; tasks only reference them by index.
type Chunk struct {
	// Start is the index of the declaration line in the document.
	Start int
	// Lines holds the declaration line followed by the body region,
	// including blank and stray lines, preserved positionally.
	Lines []string
}

// Header returns the chunk's declaration line.
func (c Chunk) Header() string {
	return c.Lines[0]
}

// Name returns the task name: the header token before the first colon,
// trimmed of surrounding whitespace.
func (c Chunk) Name() string {
	name, _, _ := strings.Cut(c.Header(), ":")
	return strings.TrimSpace(name)
}

// isDeclarationLine reports whether line opens a new chunk: any non-blank
// line with zero leading whitespace.
func isDeclarationLine(line string) bool {
	if line == "" {
		return false
	}
	return !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t")
}

// extractChunks splits document lines into ordered chunks. It never fails:
// malformed input simply produces fewer chunks, and a document with no
// declaration lines produces none. Lines preceding the first declaration
// belong to no chunk and are dropped.
func extractChunks(lines []string) []Chunk {
	var starts []int
	for i, line := range lines {
		if isDeclarationLine(line) {
			starts = append(starts, i)
		}
	}

	chunks := make([]Chunk, 0, len(starts))
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		chunks = append(chunks, Chunk{Start: start, Lines: lines[start:end]})
	}
	return chunks
}
