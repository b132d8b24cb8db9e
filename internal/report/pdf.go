package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const pdfFontFamily = "Helvetica"

// WritePDF renders the Markdown report body as an A4 PDF, preceded by a
// title line. Relative image references resolve against the directory
// containing path. The file is written via a temp file in the same
// directory so a failed render never leaves a truncated report behind.
func WritePDF(path, airport, markdownBody string) error {
	dir := filepath.Dir(path)
	upper := strings.ToUpper(airport)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Airport Flight Report "+upper, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	r := &pdfRenderer{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		imageDir: dir,
	}
	r.title("Airport Flight Report for " + upper)
	r.render([]byte(markdownBody))

	f, err := os.CreateTemp(dir, "report-*.pdf.tmp")
	if err != nil {
		return fmt.Errorf("creating report PDF: %w", err)
	}
	if err := pdf.Output(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("rendering report PDF: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("writing report PDF: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("replacing report PDF: %w", err)
	}
	return nil
}

// pdfRenderer walks a goldmark AST and draws it with gofpdf. The
// current font style and size are tracked so nested inline nodes can
// restore them.
type pdfRenderer struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	imageDir string
	source   []byte
	style    string
	size     float64
}

func (r *pdfRenderer) render(source []byte) {
	r.source = source
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(source))
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		r.block(child)
	}
}

func (r *pdfRenderer) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		r.heading(n)
	case *ast.List:
		r.list(n, 0)
		r.pdf.Ln(2)
	case *east.Table:
		r.table(n)
	case *ast.Blockquote:
		r.blockquote(n)
	case *ast.FencedCodeBlock:
		r.code(n.Lines())
	case *ast.CodeBlock:
		r.code(n.Lines())
	case *ast.ThematicBreak:
		r.rule()
	case *ast.HTMLBlock:
		// Raw HTML has no PDF rendering.
	default:
		r.setFont("", 11)
		r.inlines(node)
		r.pdf.Ln(r.lineHt() + 2)
	}
}

func (r *pdfRenderer) title(text string) {
	r.setFont("B", 20)
	r.pdf.Write(r.lineHt(), r.tr(text))
	r.pdf.Ln(12)
}

func (r *pdfRenderer) heading(n *ast.Heading) {
	size := 12.0
	switch n.Level {
	case 1:
		size = 20
	case 2:
		size = 16
	case 3:
		size = 14
	}
	r.pdf.Ln(2)
	r.setFont("B", size)
	r.inlines(n)
	r.pdf.Ln(r.lineHt() + 2)
}

func (r *pdfRenderer) list(n *ast.List, depth int) {
	left, _, _, _ := r.pdf.GetMargins()
	indent := left + float64(depth)*6
	r.setFont("", 11)
	ht := r.lineHt()

	number := n.Start
	if number == 0 {
		number = 1
	}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if n.IsOrdered() {
			marker = fmt.Sprintf("%d. ", number)
			number++
		}
		r.pdf.SetLeftMargin(indent)
		r.pdf.SetX(indent)
		r.setFont("", 11)
		r.pdf.Write(ht, r.tr(marker))

		first := true
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				r.pdf.Ln(ht)
				r.list(nested, depth+1)
				first = true
				continue
			}
			if !first {
				r.pdf.Ln(ht)
			}
			r.inlines(child)
			first = false
		}
		if !first {
			r.pdf.Ln(ht)
		}
	}
	r.pdf.SetLeftMargin(left)
	r.pdf.SetX(left)
}

func (r *pdfRenderer) table(n *east.Table) {
	header := n.FirstChild()
	if header == nil {
		return
	}
	cols := 0
	for cell := header.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cols++
	}
	if cols == 0 {
		return
	}

	pageW, _ := r.pdf.GetPageSize()
	left, _, right, _ := r.pdf.GetMargins()
	colW := (pageW - left - right) / float64(cols)
	const rowH = 7.0

	r.pdf.Ln(1)
	r.setFont("B", 10)
	r.pdf.SetFillColor(230, 230, 230)
	for cell := header.FirstChild(); cell != nil; cell = cell.NextSibling() {
		r.pdf.CellFormat(colW, rowH, r.fit(r.tr(r.textOf(cell)), colW), "1", 0, "L", true, 0, "")
	}
	r.pdf.Ln(rowH)

	r.setFont("", 10)
	for row := header.NextSibling(); row != nil; row = row.NextSibling() {
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			r.pdf.CellFormat(colW, rowH, r.fit(r.tr(r.textOf(cell)), colW), "1", 0, "L", false, 0, "")
		}
		r.pdf.Ln(rowH)
	}
	r.pdf.Ln(3)
}

func (r *pdfRenderer) blockquote(n *ast.Blockquote) {
	left, _, _, _ := r.pdf.GetMargins()
	r.pdf.SetLeftMargin(left + 6)
	r.pdf.SetX(left + 6)
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		r.block(child)
	}
	r.pdf.SetLeftMargin(left)
	r.pdf.SetX(left)
}

func (r *pdfRenderer) code(lines *text.Segments) {
	r.pdf.SetFont("Courier", "", 9)
	for i := range lines.Len() {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(r.source)), "\n")
		r.pdf.CellFormat(0, 4.5, r.tr(line), "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(2)
}

func (r *pdfRenderer) rule() {
	pageW, _ := r.pdf.GetPageSize()
	left, _, right, _ := r.pdf.GetMargins()
	y := r.pdf.GetY() + 2
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.Line(left, y, pageW-right, y)
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.Ln(5)
}

func (r *pdfRenderer) inlines(node ast.Node) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		r.inline(child)
	}
}

func (r *pdfRenderer) inline(node ast.Node) {
	switch n := node.(type) {
	case *ast.Text:
		r.pdf.Write(r.lineHt(), r.tr(string(n.Segment.Value(r.source))))
		if n.HardLineBreak() {
			r.pdf.Ln(r.lineHt())
		} else if n.SoftLineBreak() {
			r.pdf.Write(r.lineHt(), " ")
		}
	case *ast.String:
		r.pdf.Write(r.lineHt(), r.tr(string(n.Value)))
	case *ast.Emphasis:
		letter := "I"
		if n.Level >= 2 {
			letter = "B"
		}
		savedStyle, savedSize := r.style, r.size
		r.setFont(addStyle(savedStyle, letter), savedSize)
		r.inlines(n)
		r.setFont(savedStyle, savedSize)
	case *ast.CodeSpan:
		savedStyle, savedSize := r.style, r.size
		r.pdf.SetFont("Courier", "", savedSize)
		r.inlines(n)
		r.pdf.SetFont(pdfFontFamily, savedStyle, savedSize)
	case *ast.Link:
		r.inlines(n)
	case *ast.AutoLink:
		r.pdf.Write(r.lineHt(), r.tr(string(n.URL(r.source))))
	case *ast.Image:
		r.image(n)
	case *ast.RawHTML:
		// Raw HTML has no PDF rendering.
	default:
		r.inlines(node)
	}
}

// image draws a block image scaled to the text width. A reference to a
// file that does not exist degrades to its alt text in brackets.
func (r *pdfRenderer) image(n *ast.Image) {
	path := string(n.Destination)
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.imageDir, path)
	}
	if _, err := os.Stat(path); err != nil {
		r.pdf.Write(r.lineHt(), r.tr("["+r.textOf(n)+"]"))
		return
	}

	pageW, _ := r.pdf.GetPageSize()
	left, _, right, _ := r.pdf.GetMargins()
	r.pdf.Ln(r.lineHt())
	r.pdf.ImageOptions(path, left, r.pdf.GetY(), pageW-left-right, 0, true,
		gofpdf.ImageOptions{ImageType: "", ReadDpi: true}, 0, "")
	r.pdf.Ln(3)
}

func (r *pdfRenderer) textOf(node ast.Node) string {
	var b strings.Builder
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(r.source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// fit trims s until it fits a cell of width w. The translator output is
// single-byte encoded, so byte slicing cannot split a character.
func (r *pdfRenderer) fit(s string, w float64) string {
	for len(s) > 1 && r.pdf.GetStringWidth(s) > w-2 {
		s = s[:len(s)-1]
	}
	return s
}

func (r *pdfRenderer) setFont(style string, size float64) {
	r.style = style
	r.size = size
	r.pdf.SetFont(pdfFontFamily, style, size)
}

func (r *pdfRenderer) lineHt() float64 {
	return r.size * 0.45
}

func addStyle(style, letter string) string {
	if strings.Contains(style, letter) {
		return style
	}
	return style + letter
}
