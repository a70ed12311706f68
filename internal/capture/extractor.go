// Package capture pulls captured test output out of normalized error text.
package capture

import (
	"strings"
	"unicode/utf8"
)

const (
	bannerWidth = 70

	// DefaultMaxOutputSize bounds the captured output reported for one failure.
	DefaultMaxOutputSize = 1024 * 1024
	// DefaultChunkSize bounds a single testStdOut message.
	DefaultChunkSize = 50000
	// TruncationMarker is appended to captured output cut at MaxOutputSize.
	TruncationMarker = "\n... [output truncated]"
)

var (
	// BeginMarker opens a captured-output block.
	BeginMarker = Banner(">> begin captured stdout <<") + "\n"
	// EndMarker closes a captured-output block.
	EndMarker = "\n" + Banner(">> end captured stdout <<")
)

// Banner centers label in a line of dashes exactly 70 characters wide.
func Banner(label string) string {
	chunk := (bannerWidth - (len(label) + 2)) / 2
	if chunk < 0 {
		chunk = 0
	}
	out := strings.Repeat("-", chunk) + " " + label + " " + strings.Repeat("-", chunk)
	if pad := bannerWidth - len(out); pad > 0 {
		out += strings.Repeat("-", pad)
	}
	return out
}

// Wrap embeds output in a captured-output block.
func Wrap(output string) string {
	return BeginMarker + output + EndMarker
}

// Extractor splits captured output from failure text.
type Extractor struct {
	MaxOutputSize int
	ChunkSize     int
}

// NewExtractor creates an Extractor. Non-positive limits select the defaults.
func NewExtractor(maxOutputSize, chunkSize int) *Extractor {
	if maxOutputSize <= 0 {
		maxOutputSize = DefaultMaxOutputSize
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Extractor{MaxOutputSize: maxOutputSize, ChunkSize: chunkSize}
}

// Extract returns text with its captured-output block removed, plus the block's
// content split into chunks. When the block is missing or malformed, text is
// returned unchanged with no chunks.
func (e *Extractor) Extract(text string) (string, []string) {
	start := strings.Index(text, BeginMarker)
	end := strings.Index(text, EndMarker)
	if start < 0 || start >= end {
		return text, nil
	}

	// The markers share a newline when the block is empty.
	var captured string
	if contentStart := start + len(BeginMarker); contentStart < end {
		captured = text[contentStart:end]
	}
	detail := text[:start] + text[end+len(EndMarker):]

	return detail, e.Split(e.Limit(captured))
}

// Limit truncates output to MaxOutputSize bytes at a rune boundary and marks
// the cut.
func (e *Extractor) Limit(output string) string {
	if e.MaxOutputSize <= 0 || len(output) <= e.MaxOutputSize {
		return output
	}
	cut := e.MaxOutputSize
	for cut > 0 && !utf8.RuneStart(output[cut]) {
		cut--
	}
	return output[:cut] + TruncationMarker
}

// Split breaks output into chunks of at most ChunkSize bytes, preferring to end
// each chunk after a newline. Concatenating the chunks yields output.
func (e *Extractor) Split(output string) []string {
	if output == "" {
		return nil
	}
	size := e.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}

	var chunks []string
	for len(output) > size {
		cut := strings.LastIndexByte(output[:size], '\n') + 1
		if cut <= 0 {
			cut = size
			for cut > 1 && !utf8.RuneStart(output[cut]) {
				cut--
			}
		}
		chunks = append(chunks, output[:cut])
		output = output[cut:]
	}
	return append(chunks, output)
}
