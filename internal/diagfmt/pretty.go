package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"casecheck/internal/diag"
	"casecheck/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	codeColor = color.New(color.Bold)
	noteColor = color.New(color.FgBlue)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с
// аналогичным форматом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	for i := 0; i < maxItems; i++ {
		d := items[i]
		printHeader(w, fs, d.Severity.String(), d.Code.ID(), d.Primary, d.Message, opts, severityColor(d.Severity))
		printContext(w, fs, d.Primary)

		if opts.ShowNotes {
			for _, note := range d.Notes {
				printHeader(w, fs, "note", "", note.Span, note.Msg, opts, noteColor)
				printContext(w, fs, note.Span)
			}
		}
		if opts.ShowFixes {
			for _, fix := range d.Fixes {
				fmt.Fprintf(w, "  fix: %s\n", fix.Title)
			}
		}
	}

	if maxItems < len(items) {
		fmt.Fprintf(w, "... and %d more diagnostics\n", len(items)-maxItems)
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func printHeader(w io.Writer, fs *source.FileSet, label, code string, sp source.Span, msg string, opts PrettyOpts, c *color.Color) {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	path := formatPath(f, opts.PathMode)

	sevText := label
	codeText := code
	if opts.Color {
		sevText = c.Sprint(label)
		if code != "" {
			codeText = codeColor.Sprint(code)
		}
	}
	if code != "" {
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevText, codeText, msg)
		return
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col, sevText, msg)
}

// printContext печатает строку источника и подчёркивание ^~~~ под спаном.
// Для многострочных спанов подчёркивание тянется до конца первой строки.
func printContext(w io.Writer, fs *source.FileSet, sp source.Span) {
	if sp.Empty() && sp.Start == 0 {
		return
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(w, "  %s\n", line)

	// Подчёркивание считаем в экранных колонках: табы и широкие руны
	// занимают больше одной.
	startIdx := int(start.Col) - 1
	if startIdx > len(line) {
		startIdx = len(line)
	}
	endIdx := len(line)
	if end.Line == start.Line && int(end.Col)-1 < endIdx {
		endIdx = int(end.Col) - 1
	}
	if endIdx <= startIdx {
		endIdx = startIdx + 1
		if endIdx > len(line) {
			endIdx = len(line)
		}
	}

	pad := runewidth.StringWidth(line[:startIdx])
	width := runewidth.StringWidth(line[startIdx:endIdx])
	if width < 1 {
		width = 1
	}

	fmt.Fprintf(w, "  %s^%s\n", strings.Repeat(" ", pad), strings.Repeat("~", width-1))
}
