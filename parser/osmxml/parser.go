/*
Package osmxml provides a stream based parser for OSM XML files (.osm).

The parser is pull based: each call to Next reads tokens until the next
requested element is complete and returns it with all its children. Only
the subtree of that element is held in memory and the parser keeps no
reference to it after Next returns, so memory use does not grow with the
size of the document.
*/
package osmxml

import (
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/omniscale/osmcsv/element"
)

var DefaultElements = []string{"node", "way", "relation"}

type Config struct {
	// Elements lists the tag names of the elements returned by Next.
	// Defaults to DefaultElements.
	Elements []string
}

// ParseError is returned for malformed documents. Parsing can not continue
// after a ParseError.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing OSM XML at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Parser struct {
	decoder  *xml.Decoder
	elements map[string]struct{}
	// descend into node/way/relation elements that are not requested,
	// only required if nested elements like tag or nd are requested
	descend bool
	err     error
}

// New creates a new parser for r. Documents with a non UTF-8 encoding
// declaration are converted to UTF-8.
func New(r io.Reader, conf Config) *Parser {
	names := conf.Elements
	if len(names) == 0 {
		names = DefaultElements
	}
	p := &Parser{
		decoder:  xml.NewDecoder(r),
		elements: make(map[string]struct{}, len(names)),
	}
	p.decoder.CharsetReader = charset.NewReaderLabel
	for _, name := range names {
		p.elements[name] = struct{}{}
		if _, ok := element.KindValues[name]; !ok {
			p.descend = true
		}
	}
	return p
}

// Next returns the next requested element in document order.
// Returns io.EOF after the last element. Any other error is a *ParseError
// and all following calls return the same error.
func (p *Parser) Next() (*element.Element, error) {
	if p.err != nil {
		return nil, p.err
	}
	for {
		token, err := p.decoder.Token()
		if err == io.EOF {
			p.err = io.EOF
			return nil, p.err
		}
		if err != nil {
			p.err = p.parseError(err)
			return nil, p.err
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if _, ok := p.elements[start.Name.Local]; ok {
			elem, err := p.readElement(start)
			if err != nil {
				p.err = err
				return nil, err
			}
			return elem, nil
		}
		if _, ok := element.KindValues[start.Name.Local]; ok && !p.descend {
			if err := p.decoder.Skip(); err != nil {
				p.err = p.parseError(err)
				return nil, p.err
			}
		}
	}
}

// readElement reads all tokens till the end of start.
func (p *Parser) readElement(start xml.StartElement) (*element.Element, error) {
	root := newElement(start)
	stack := []*element.Element{root}
	for {
		token, err := p.decoder.Token()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, p.parseError(err)
		}
		switch tok := token.(type) {
		case xml.StartElement:
			child := newElement(tok)
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, child)
			stack = append(stack, child)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return root, nil
			}
		}
	}
}

func newElement(tok xml.StartElement) *element.Element {
	e := &element.Element{
		Name:  tok.Name.Local,
		Attrs: make(map[string]string, len(tok.Attr)),
	}
	for _, attr := range tok.Attr {
		e.Attrs[attr.Name.Local] = attr.Value
	}
	return e
}

func (p *Parser) parseError(err error) error {
	if serr, ok := err.(*xml.SyntaxError); ok {
		return &ParseError{Line: serr.Line, Err: err}
	}
	line, _ := p.decoder.InputPos()
	return &ParseError{Line: line, Err: err}
}
