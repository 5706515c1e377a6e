package clipboard

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/atotto/clipboard"

	"github.com/davidleathers/placeholder-numbers/internal/domain/errors"
)

// Writer puts text on a clipboard
type Writer interface {
	WriteAll(text string) error
}

// System writes to the OS clipboard
type System struct{}

// WriteAll implements Writer
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// Copier copies text to a clipboard and prints it to a fallback writer when
// the clipboard is unavailable.
type Copier struct {
	clip     Writer
	fallback io.Writer
	logger   *slog.Logger
}

// NewCopier returns a Copier. A nil clip uses the system clipboard.
func NewCopier(clip Writer, fallback io.Writer, logger *slog.Logger) *Copier {
	if clip == nil {
		clip = System{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Copier{clip: clip, fallback: fallback, logger: logger}
}

// Copy reports whether text reached the clipboard. When it did not, the text is
// written to the fallback writer and only a failure of that write is returned.
func (c *Copier) Copy(text string) (bool, error) {
	err := c.clip.WriteAll(text)
	if err == nil {
		return true, nil
	}

	clipErr := errors.NewClipboardError("failed to copy to clipboard").WithCause(err)
	c.logger.Warn("clipboard unavailable, printing instead", "error", clipErr)

	if c.fallback == nil {
		return false, clipErr
	}
	if _, werr := io.WriteString(c.fallback, text+"\n"); werr != nil {
		return false, errors.NewClipboardError("failed to print copied text").WithCause(werr)
	}
	return false, nil
}
