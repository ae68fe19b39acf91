package element

import (
	"fmt"
	"strconv"
)

// Element is a raw element of an OSM document as returned by the parsers:
// the tag name, the attributes and the child elements in document order.
// Elements are never modified once returned by a parser.
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element
}

// Attr returns the value of the attribute name.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// ChildrenNamed returns all direct children with the given tag name.
func (e *Element) ChildrenNamed(name string) []*Element {
	var result []*Element
	for _, c := range e.Children {
		if c.Name == name {
			result = append(result, c)
		}
	}
	return result
}

func (e *Element) String() string {
	return fmt.Sprintf("<%s id=%q>", e.Name, e.Attrs["id"])
}

type Kind int

const (
	NODE Kind = iota
	WAY
	RELATION
)

var KindValues = map[string]Kind{
	"node":     NODE,
	"way":      WAY,
	"relation": RELATION,
}

func (k Kind) String() string {
	switch k {
	case NODE:
		return "node"
	case WAY:
		return "way"
	case RELATION:
		return "relation"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Column orders of the output tables. These match the column order of the
// SQL tables in database/postgis.
var (
	NodeColumns    = []string{"id", "lat", "lon", "user", "uid", "version", "changeset", "timestamp"}
	WayColumns     = []string{"id", "user", "uid", "version", "changeset", "timestamp"}
	TagColumns     = []string{"id", "key", "value", "type"}
	WayNodeColumns = []string{"id", "node_id", "position"}
)

// NodeRecord contains the primary attributes of a node. Values are kept
// as found in the document, validate coerces them if required.
type NodeRecord struct {
	ID        string
	Lat       string
	Lon       string
	User      string
	UID       string
	Version   string
	Changeset string
	Timestamp string
}

func (n *NodeRecord) Row() []string {
	return []string{n.ID, n.Lat, n.Lon, n.User, n.UID, n.Version, n.Changeset, n.Timestamp}
}

// WayRecord contains the primary attributes of a way.
type WayRecord struct {
	ID        string
	User      string
	UID       string
	Version   string
	Changeset string
	Timestamp string
}

func (w *WayRecord) Row() []string {
	return []string{w.ID, w.User, w.UID, w.Version, w.Changeset, w.Timestamp}
}

// TagRecord is a single tag of a node or way. ID references the owning
// element, Type is the namespace prefix of the original key.
type TagRecord struct {
	ID    string
	Key   string
	Value string
	Type  string
}

func (t *TagRecord) Row() []string {
	return []string{t.ID, t.Key, t.Value, t.Type}
}

// WayNodeRecord references the node at Position of the way ID.
type WayNodeRecord struct {
	ID       string
	NodeID   string
	Position int
}

func (wn *WayNodeRecord) Row() []string {
	return []string{wn.ID, wn.NodeID, strconv.Itoa(wn.Position)}
}
