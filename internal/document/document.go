// Package document turns report PDFs into page text and ruled tables.
package document

// Cell is one table cell. Valid is false for cells covered by a merged neighbour.
type Cell struct {
	Text  string
	Valid bool
}

// Row is one table row, left to right.
type Row []Cell

// Table is a ruled grid, top to bottom.
type Table []Row

// Page holds the text and tables of one page.
type Page struct {
	Number int // 1-based
	Text   string
	Tables []Table
}

// Document is an opened report.
type Document struct {
	Name  string
	Pages []Page
}

// Page returns the page at 0-based index i.
func (d *Document) Page(i int) (Page, bool) {
	if d == nil || i < 0 || i >= len(d.Pages) {
		return Page{}, false
	}
	return d.Pages[i], true
}

// TextRow builds a row where every cell is present.
func TextRow(cells ...string) Row {
	row := make(Row, len(cells))
	for i, c := range cells {
		row[i] = Cell{Text: c, Valid: true}
	}
	return row
}
