// Package content reads bounded text content from files.
package content

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	// TruncationMarkerFormat is appended as the last line of a capped file.
	TruncationMarkerFormat = "... [file truncated: showing first %d lines]\n"
	// UnreadablePlaceholderFormat replaces the content of a file that cannot be read.
	UnreadablePlaceholderFormat = "[unable to read file: %v]\n"
)

// Result is the outcome of reading one file.
type Result struct {
	Content   string
	Truncated bool
	// ReadError is set when Content holds the unreadable placeholder.
	ReadError error
}

// Reader reads file text, keeping at most a fixed number of lines in memory.
type Reader struct{}

// NewReader constructs a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns up to maxLines lines of the file at path. A non-positive maxLines disables the cap.
// Failures never propagate: the returned content is a placeholder describing the problem.
//
// #nosec G304
func (reader *Reader) Read(path string, maxLines int) Result {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return placeholder(openError)
	}
	defer fileHandle.Close()
	return ReadFrom(fileHandle, maxLines)
}

// ReadFrom reads lines from source the same way Read does for files.
func ReadFrom(source io.Reader, maxLines int) Result {
	bufferedReader := bufio.NewReader(source)
	var lines []string
	validUTF8 := true
	truncated := false
	for {
		line, readError := bufferedReader.ReadString('\n')
		if line != "" {
			if maxLines > 0 && len(lines) == maxLines {
				truncated = true
				break
			}
			if validUTF8 && !utf8.ValidString(line) {
				validUTF8 = false
			}
			lines = append(lines, line)
		}
		if readError != nil {
			if errors.Is(readError, io.EOF) {
				break
			}
			return placeholder(readError)
		}
	}

	text := strings.Join(lines, "")
	if !validUTF8 {
		text = decodeLatin1(text)
	}
	if truncated {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		text += fmt.Sprintf(TruncationMarkerFormat, maxLines)
	}
	return Result{Content: text, Truncated: truncated}
}

// decodeLatin1 reinterprets every byte as an ISO-8859-1 code point, which cannot fail.
func decodeLatin1(raw string) string {
	decoded, decodeError := charmap.ISO8859_1.NewDecoder().String(raw)
	if decodeError != nil {
		return strings.ToValidUTF8(raw, string(utf8.RuneError))
	}
	return decoded
}

func placeholder(err error) Result {
	return Result{Content: fmt.Sprintf(UnreadablePlaceholderFormat, err), ReadError: err}
}
