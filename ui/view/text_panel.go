package view

import (
	"fmt"
	"strings"

	"github.com/okvist/text-reader-go/ui/model"
	"github.com/okvist/text-reader-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const matchTag = "match"

// TextPanel shows the extracted text with search highlighting and hosts the
// export buttons.
type TextPanel interface {
	SetText(s string)
	HighlightMatches(matches []model.Match)
	Query() string
}

// TextPanelHandlers are invoked on user actions in the panel.
type TextPanelHandlers struct {
	OnCopy   func()
	OnSave   func()
	OnClear  func()
	OnSearch func(query string)
}

type textPanel struct {
	text    *TextWidget
	search  *TextWidget
	content string
}

// NewTextPanel builds the panel starting at the given row and returns the
// next free row.
func NewTextPanel(startRow int, handlers TextPanelHandlers) (TextPanel, int) {
	row := startRow
	v := &textPanel{}

	v.text = Text(Height(10), Width(90))
	Grid(v.text, Row(row), Column(0), Columnspan(5), Sticky("nsew"), Padx("0.4m"), Pady("0.3m"))
	v.text.TagConfigure(matchTag, Background(theme.ColorHighlight))
	row++

	searchLbl := Label(Txt("Search"), Anchor("w"))
	Grid(searchLbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	v.search = Text(Height(1), Width(24))
	Grid(v.search, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	doSearch := func() {
		if handlers.OnSearch != nil {
			handlers.OnSearch(v.Query())
		}
	}
	searchBtn := Button(Txt("Find"), Command(doSearch))
	Grid(searchBtn, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(v.search, "<Return>", Command(doSearch))
	row++

	copyBtn := Button(Txt("Copy Text"), Style(theme.StylePrimaryButton), Command(handlers.OnCopy))
	Grid(copyBtn, Row(row), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	saveBtn := Button(Txt("Save Text"), Style(theme.StylePrimaryButton), Command(handlers.OnSave))
	Grid(saveBtn, Row(row), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	clearBtn := Button(Txt("Clear Text"), Style(theme.StyleDangerButton), Command(handlers.OnClear))
	Grid(clearBtn, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++

	return v, row
}

func (v *textPanel) SetText(s string) {
	if v == nil || v.text == nil {
		return
	}
	v.content = s
	v.text.Delete("1.0", END)
	v.text.Insert("1.0", s)
}

// HighlightMatches tags every match range. Offsets are byte positions in the
// content; they are converted to Tk line.char indices here.
func (v *textPanel) HighlightMatches(matches []model.Match) {
	if v == nil || v.text == nil {
		return
	}
	v.text.TagRemove(matchTag, "1.0", END)
	for _, m := range matches {
		v.text.TagAdd(matchTag, textIndex(v.content, m.Start), textIndex(v.content, m.End))
	}
}

func (v *textPanel) Query() string {
	if v == nil || v.search == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(v.search.Get("1.0", END), ""))
}

// textIndex converts a byte offset into a Tk text index of the form
// "line.char". Lines are 1-based, characters 0-based.
func textIndex(content string, off int) string {
	if off > len(content) {
		off = len(content)
	}
	line := 1 + strings.Count(content[:off], "\n")
	col := off
	if i := strings.LastIndexByte(content[:off], '\n'); i >= 0 {
		col = off - i - 1
	}
	col = len([]rune(content[off-col : off]))
	return fmt.Sprintf("%d.%d", line, col)
}
