// Package shape converts raw OSM node and way elements into the records
// of the output tables.
package shape

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/omniscale/osmcsv/element"
	"github.com/omniscale/osmcsv/mapping"
)

var ErrUnsupportedElement = errors.New("only node and way elements can be shaped")

// MissingFieldError is returned for elements without a required attribute.
type MissingFieldError struct {
	Element string
	ID      string
	Field   string
}

func (e *MissingFieldError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s without required attribute %q", e.Element, e.Field)
	}
	return fmt.Sprintf("%s %s without required attribute %q", e.Element, e.ID, e.Field)
}

// Bundle contains all records of a single node or way. Node is set for
// nodes, Way and WayNodes for ways.
type Bundle struct {
	Kind     element.Kind
	Node     *element.NodeRecord
	Way      *element.WayRecord
	Tags     []element.TagRecord
	WayNodes []element.WayNodeRecord
}

// ID returns the ID of the node or way.
func (b *Bundle) ID() string {
	if b.Node != nil {
		return b.Node.ID
	}
	if b.Way != nil {
		return b.Way.ID
	}
	return ""
}

type Shaper struct {
	rules *mapping.Rules
}

func New(rules *mapping.Rules) *Shaper {
	return &Shaper{rules: rules}
}

// Shape converts a node or way element.
func (s *Shaper) Shape(e *element.Element) (*Bundle, error) {
	switch e.Name {
	case "node":
		return s.shapeNode(e)
	case "way":
		return s.shapeWay(e)
	}
	return nil, errors.Wrapf(ErrUnsupportedElement, "shaping %s", e.Name)
}

// attrs returns the values for all names or a MissingFieldError for the
// first missing one.
func attrs(e *element.Element, names ...string) ([]string, error) {
	values := make([]string, len(names))
	for i, name := range names {
		v, ok := e.Attr(name)
		if !ok {
			return nil, &MissingFieldError{Element: e.Name, ID: e.Attrs["id"], Field: name}
		}
		values[i] = v
	}
	return values, nil
}

func (s *Shaper) shapeNode(e *element.Element) (*Bundle, error) {
	v, err := attrs(e, element.NodeColumns...)
	if err != nil {
		return nil, err
	}
	node := &element.NodeRecord{
		ID:        v[0],
		Lat:       v[1],
		Lon:       v[2],
		User:      v[3],
		UID:       v[4],
		Version:   v[5],
		Changeset: v[6],
		Timestamp: v[7],
	}
	tags, err := s.tags(e, node.ID)
	if err != nil {
		return nil, err
	}
	return &Bundle{Kind: element.NODE, Node: node, Tags: tags}, nil
}

func (s *Shaper) shapeWay(e *element.Element) (*Bundle, error) {
	v, err := attrs(e, element.WayColumns...)
	if err != nil {
		return nil, err
	}
	way := &element.WayRecord{
		ID:        v[0],
		User:      v[1],
		UID:       v[2],
		Version:   v[3],
		Changeset: v[4],
		Timestamp: v[5],
	}

	var wayNodes []element.WayNodeRecord
	for _, nd := range e.ChildrenNamed("nd") {
		ref, ok := nd.Attr("ref")
		if !ok {
			return nil, &MissingFieldError{Element: "nd of way", ID: way.ID, Field: "ref"}
		}
		wayNodes = append(wayNodes, element.WayNodeRecord{
			ID:       way.ID,
			NodeID:   ref,
			Position: len(wayNodes),
		})
	}

	tags, err := s.tags(e, way.ID)
	if err != nil {
		return nil, err
	}
	return &Bundle{Kind: element.WAY, Way: way, Tags: tags, WayNodes: wayNodes}, nil
}

// tags returns the tag records for all tag children of e. Tags with
// problem characters in the key are skipped.
func (s *Shaper) tags(e *element.Element, id string) ([]element.TagRecord, error) {
	var tags []element.TagRecord
	for _, child := range e.ChildrenNamed("tag") {
		key, ok := child.Attr("k")
		if !ok {
			return nil, &MissingFieldError{Element: "tag of " + e.Name, ID: id, Field: "k"}
		}
		value, ok := child.Attr("v")
		if !ok {
			return nil, &MissingFieldError{Element: "tag of " + e.Name, ID: id, Field: "v"}
		}
		if mapping.HasProblemChars(key) {
			continue
		}
		tag := element.TagRecord{ID: id, Value: value}
		tag.Type, tag.Key = s.splitKey(key)
		if strings.Count(key, ":") == 1 {
			tag.Value = s.rules.CleanValue(key, value)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// splitKey returns the type and key for a tag key. The type is the
// namespace before the first colon. Keys with more than one colon only
// keep the last two parts as key, e.g. type "a" and key "c:d" for "a:b:c:d".
func (s *Shaper) splitKey(key string) (string, string) {
	parts := strings.Split(key, ":")
	switch len(parts) {
	case 1:
		return s.rules.DefaultTagType(), key
	case 2:
		return parts[0], parts[1]
	default:
		return parts[0], strings.Join(parts[len(parts)-2:], ":")
	}
}
