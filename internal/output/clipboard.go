package output

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyToClipboard places the report text on the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("error writing to clipboard: %w", err)
	}
	return nil
}
