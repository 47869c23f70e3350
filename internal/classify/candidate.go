package classify

import (
	"io"
	"os"
)

// SniffLength is the maximum number of bytes read from a file for content heuristics.
const SniffLength = 1024

// Candidate is a file under classification. Its head bytes are read lazily, once.
type Candidate struct {
	RelativePath string
	AbsolutePath string
	Name         string

	head       []byte
	headError  error
	headLoaded bool
}

// NewCandidate builds a Candidate for a file.
func NewCandidate(relativePath string, absolutePath string, name string) *Candidate {
	return &Candidate{RelativePath: relativePath, AbsolutePath: absolutePath, Name: name}
}

// Head returns up to SniffLength leading bytes of the file.
func (candidate *Candidate) Head() ([]byte, error) {
	if candidate.headLoaded {
		return candidate.head, candidate.headError
	}
	candidate.headLoaded = true
	candidate.head, candidate.headError = readHead(candidate.AbsolutePath)
	return candidate.head, candidate.headError
}

// #nosec G304
func readHead(path string) ([]byte, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()
	buffer := make([]byte, SniffLength)
	bytesRead, readError := io.ReadFull(fileHandle, buffer)
	if readError != nil && readError != io.EOF && readError != io.ErrUnexpectedEOF {
		return nil, readError
	}
	return buffer[:bytesRead], nil
}
