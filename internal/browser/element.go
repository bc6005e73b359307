package browser

import "github.com/PuerkitoBio/goquery"

// NewSelectionElement wraps a parsed goquery selection as an Element.
func NewSelectionElement(sel *goquery.Selection) Element {
	return selectionElement{sel: sel}
}

type selectionElement struct {
	sel *goquery.Selection
}

func (e selectionElement) QueryAll(selector string) ([]Element, error) {
	found := e.sel.Find(selector)
	elements := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, selectionElement{sel: s})
	})
	return elements, nil
}

func (e selectionElement) QuerySingle(selector string) (Element, error) {
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, nil
	}
	return selectionElement{sel: found}, nil
}

func (e selectionElement) Text() (string, error) {
	return e.sel.Text(), nil
}

func (e selectionElement) Attribute(name string) (string, error) {
	val, _ := e.sel.Attr(name)
	return val, nil
}
