// Package clipboard copies the assembled document to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable reports that no clipboard utility is installed.
var ErrClipboardUnavailable = errors.New("clipboard utility unavailable")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	writeAll func(text string) error
}

// NewService constructs a clipboard Service backed by the system clipboard.
func NewService() *Service {
	return &Service{writeAll: clipboard.WriteAll}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := service.writeAll(text); err != nil {
		return fmt.Errorf("copy document to clipboard: %w", err)
	}
	return nil
}

var _ Copier = (*Service)(nil)
