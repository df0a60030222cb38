package presenter

import (
	"errors"
	"fmt"
	"os"

	"log/slog"

	"github.com/okvist/text-reader-go/ui/model"
)

// ErrNoText is returned for copy or save when the panel is empty.
var ErrNoText = errors.New("presenter: no text to export")

// ErrSave wraps a failed write of the extracted text.
var ErrSave = errors.New("presenter: save failed")

// TextView is the UI surface for the text panel.
type TextView interface {
	SetText(s string)
	SetStatus(msg string)
	CopyToClipboard(s string)
	HighlightMatches(matches []model.Match)
}

// TextPresenter handles the text panel operations: copy, save, clear, search.
type TextPresenter struct {
	Text   *model.TextModel
	View   TextView
	logger *slog.Logger
}

func NewTextPresenter(text *model.TextModel, view TextView, logger *slog.Logger) *TextPresenter {
	return &TextPresenter{Text: text, View: view, logger: logger}
}

// Copy places the current text on the clipboard. Copying an empty panel only
// sets a status hint.
func (p *TextPresenter) Copy() error {
	if p == nil || p.View == nil {
		return nil
	}
	if p.Text.Empty() {
		p.View.SetStatus("No text to copy")
		return ErrNoText
	}
	p.View.CopyToClipboard(p.Text.Content())
	p.View.SetStatus("Text copied to clipboard")
	return nil
}

// Save writes the current text to path exactly as displayed, so reading the
// file back yields the panel content.
func (p *TextPresenter) Save(path string) error {
	if p == nil {
		return nil
	}
	if p.Text.Empty() {
		if p.View != nil {
			p.View.SetStatus("No text to save")
		}
		return ErrNoText
	}
	if err := os.WriteFile(path, []byte(p.Text.Content()), 0o644); err != nil {
		if p.logger != nil {
			p.logger.Error("save text", "path", path, "error", err)
		}
		if p.View != nil {
			p.View.SetStatus("Saving failed")
		}
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	if p.View != nil {
		p.View.SetStatus(fmt.Sprintf("Saved to %s", path))
	}
	return nil
}

// Clear empties the panel and its highlights.
func (p *TextPresenter) Clear() {
	if p == nil {
		return
	}
	p.Text.Clear()
	if p.View != nil {
		p.View.SetText("")
		p.View.HighlightMatches(nil)
		p.View.SetStatus("Text cleared")
	}
}

// SetContent pushes new text to the model and view together.
func (p *TextPresenter) SetContent(s string) {
	if p == nil {
		return
	}
	p.Text.SetContent(s)
	if p.View != nil {
		p.View.SetText(s)
		p.View.HighlightMatches(nil)
	}
}

// AppendContent adds text to the end of the panel without discarding what is
// already shown.
func (p *TextPresenter) AppendContent(s string) {
	if p == nil || s == "" {
		return
	}
	p.Text.Append(s)
	if p.View != nil {
		p.View.SetText(p.Text.Content())
		p.View.HighlightMatches(nil)
	}
}

// Search highlights all case-insensitive occurrences of query.
func (p *TextPresenter) Search(query string) {
	if p == nil || p.View == nil {
		return
	}
	n := p.Text.Search(query)
	p.View.HighlightMatches(p.Text.Matches())
	switch {
	case query == "":
		p.View.SetStatus("")
	case n == 0:
		p.View.SetStatus(fmt.Sprintf("No matches for %q", query))
	default:
		p.View.SetStatus(fmt.Sprintf("%d matches", n))
	}
}
