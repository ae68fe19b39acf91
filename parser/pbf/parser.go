/*
Package pbf reads OpenStreetMap PBF files and returns the same raw elements
as the osmxml parser, so that both formats can be shaped by the same code.

Decoding is done by github.com/omniscale/go-osm/parser/pbf with a single
decoder goroutine. Elements are returned in file order.
*/
package pbf

import (
	"context"
	"io"
	"sort"
	"strconv"
	"time"

	osm "github.com/omniscale/go-osm"
	osmpbf "github.com/omniscale/go-osm/parser/pbf"
	"github.com/pkg/errors"

	"github.com/omniscale/osmcsv/element"
)

// ErrClosed is returned by Next after Close.
var ErrClosed = errors.New("PBF parser closed")

type Config struct {
	// Elements lists the tag names of the elements returned by Next.
	// Only node, way and relation are supported. Defaults to all three.
	Elements []string
}

type Parser struct {
	parser    *osmpbf.Parser
	nodes     chan []osm.Node
	ways      chan []osm.Way
	relations chan []osm.Relation
	errc      chan error
	cancel    context.CancelFunc
	started   bool
	pending   []*element.Element
	err       error
}

func New(r io.Reader, conf Config) (*Parser, error) {
	names := conf.Elements
	if len(names) == 0 {
		names = []string{"node", "way", "relation"}
	}
	p := &Parser{errc: make(chan error, 1)}
	pbfConf := osmpbf.Config{
		IncludeMetadata: true,
		Concurrency:     1,
	}
	for _, name := range names {
		kind, ok := element.KindValues[name]
		if !ok {
			return nil, errors.Errorf("unsupported element %q for PBF files", name)
		}
		switch kind {
		case element.NODE:
			p.nodes = make(chan []osm.Node)
			pbfConf.Nodes = p.nodes
		case element.WAY:
			p.ways = make(chan []osm.Way)
			pbfConf.Ways = p.ways
		case element.RELATION:
			p.relations = make(chan []osm.Relation)
			pbfConf.Relations = p.relations
		}
	}
	p.parser = osmpbf.New(r, pbfConf)
	return p, nil
}

// Header returns the PBF header. Needs to be called before the first Next.
func (p *Parser) Header() (*osmpbf.Header, error) {
	return p.parser.Header()
}

// Next returns the next element. Returns io.EOF after the last element.
func (p *Parser) Next() (*element.Element, error) {
	if p.err != nil {
		return nil, p.err
	}
	if !p.started {
		p.started = true
		var ctx context.Context
		ctx, p.cancel = context.WithCancel(context.Background())
		go func() {
			p.errc <- p.parser.Parse(ctx)
		}()
	}

	for len(p.pending) == 0 {
		select {
		case nds, ok := <-p.nodes:
			if !ok {
				p.nodes = nil
				continue
			}
			for i := range nds {
				p.pending = append(p.pending, fromNode(&nds[i]))
			}
		case ws, ok := <-p.ways:
			if !ok {
				p.ways = nil
				continue
			}
			for i := range ws {
				p.pending = append(p.pending, fromWay(&ws[i]))
			}
		case rels, ok := <-p.relations:
			if !ok {
				p.relations = nil
				continue
			}
			for i := range rels {
				p.pending = append(p.pending, fromRelation(&rels[i]))
			}
		case err := <-p.errc:
			// all channels are unbuffered, everything was received once
			// Parse returned
			if err != nil {
				p.err = errors.Wrap(err, "parsing PBF")
			} else {
				p.err = io.EOF
			}
			return nil, p.err
		}
	}

	e := p.pending[0]
	p.pending[0] = nil
	p.pending = p.pending[1:]
	return e, nil
}

// Close stops the decoder if it is still running. Next returns ErrClosed
// afterwards, unless it already returned io.EOF or an error.
func (p *Parser) Close() error {
	if p.err == nil {
		p.err = ErrClosed
	}
	p.pending = nil
	if p.cancel == nil {
		return nil
	}
	p.cancel()
	// unblock the decoder if it still sends blocks
	go func(nodes chan []osm.Node, ways chan []osm.Way, rels chan []osm.Relation) {
		for nodes != nil || ways != nil || rels != nil {
			select {
			case _, ok := <-nodes:
				if !ok {
					nodes = nil
				}
			case _, ok := <-ways:
				if !ok {
					ways = nil
				}
			case _, ok := <-rels:
				if !ok {
					rels = nil
				}
			}
		}
	}(p.nodes, p.ways, p.relations)
	p.cancel = nil
	return nil
}

func fromNode(n *osm.Node) *element.Element {
	e := &element.Element{
		Name: "node",
		Attrs: map[string]string{
			"id":  strconv.FormatInt(n.ID, 10),
			"lat": strconv.FormatFloat(n.Lat, 'f', 7, 64),
			"lon": strconv.FormatFloat(n.Long, 'f', 7, 64),
		},
	}
	addMetadata(e, n.Metadata)
	addTags(e, n.Tags)
	return e
}

func fromWay(w *osm.Way) *element.Element {
	e := &element.Element{
		Name:  "way",
		Attrs: map[string]string{"id": strconv.FormatInt(w.ID, 10)},
	}
	addMetadata(e, w.Metadata)
	for _, ref := range w.Refs {
		e.Children = append(e.Children, &element.Element{
			Name:  "nd",
			Attrs: map[string]string{"ref": strconv.FormatInt(ref, 10)},
		})
	}
	addTags(e, w.Tags)
	return e
}

var memberTypes = map[osm.MemberType]string{
	osm.NodeMember:     "node",
	osm.WayMember:      "way",
	osm.RelationMember: "relation",
}

func fromRelation(r *osm.Relation) *element.Element {
	e := &element.Element{
		Name:  "relation",
		Attrs: map[string]string{"id": strconv.FormatInt(r.ID, 10)},
	}
	addMetadata(e, r.Metadata)
	for _, m := range r.Members {
		e.Children = append(e.Children, &element.Element{
			Name: "member",
			Attrs: map[string]string{
				"type": memberTypes[m.Type],
				"ref":  strconv.FormatInt(m.ID, 10),
				"role": m.Role,
			},
		})
	}
	addTags(e, r.Tags)
	return e
}

// addMetadata sets the same attributes as found in OSM XML files. Elements
// without metadata get no attributes.
func addMetadata(e *element.Element, md *osm.Metadata) {
	if md == nil {
		return
	}
	e.Attrs["user"] = md.UserName
	e.Attrs["uid"] = strconv.FormatInt(int64(md.UserID), 10)
	e.Attrs["version"] = strconv.FormatInt(int64(md.Version), 10)
	e.Attrs["changeset"] = strconv.FormatInt(md.Changeset, 10)
	e.Attrs["timestamp"] = md.Timestamp.UTC().Format(time.RFC3339)
}

// addTags appends tag children sorted by key, PBF tags have no order.
func addTags(e *element.Element, tags osm.Tags) {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e.Children = append(e.Children, &element.Element{
			Name:  "tag",
			Attrs: map[string]string{"k": k, "v": tags[k]},
		})
	}
}
