package output

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// clipboardWriteAll is swapped out in tests
var clipboardWriteAll = clipboard.WriteAll

// CopyToClipboard places rendered output on the system clipboard
func CopyToClipboard(data []byte) error {
	if err := clipboardWriteAll(string(data)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
