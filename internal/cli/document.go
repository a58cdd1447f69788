package cli

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/resumake/pkg/editor"
	"github.com/matzehuels/resumake/pkg/errors"
	pkgio "github.com/matzehuels/resumake/pkg/io"
)

// loadEditor opens the working document as an editor.
func loadEditor(path string, logger *log.Logger) (*editor.Editor, error) {
	doc, err := pkgio.Import(path)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "no resume at %s (run 'resumake init' first)", path)
		}
		return nil, err
	}
	return editor.FromDocument(doc, editor.WithLogger(logger))
}

// saveEditor writes the editor state back to the working document.
func saveEditor(path string, e *editor.Editor) error {
	return pkgio.Export(e.Document(), path)
}

// editDocument loads the working document, applies fn and saves the result.
// Nothing is written when fn fails.
func (c *CLI) editDocument(fn func(e *editor.Editor) error) error {
	e, err := loadEditor(c.docPath, c.Logger)
	if err != nil {
		return err
	}
	if err := fn(e); err != nil {
		return err
	}
	return saveEditor(c.docPath, e)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
