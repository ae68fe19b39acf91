// Package writer writes shaped elements into the CSV files of the output
// tables.
package writer

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/omniscale/osmcsv/element"
	"github.com/omniscale/osmcsv/shape"
)

// Table describes an output table and its CSV file.
type Table struct {
	Name    string
	File    string
	Columns []string
}

const (
	NodesTable    = "nodes"
	NodeTagsTable = "nodes_tags"
	WaysTable     = "ways"
	WayNodesTable = "ways_nodes"
	WayTagsTable  = "ways_tags"
)

// Tables lists all output tables. Rows of referenced tables are written
// before the rows that reference them.
var Tables = []Table{
	{NodesTable, "nodes.csv", element.NodeColumns},
	{NodeTagsTable, "nodes_tags.csv", element.TagColumns},
	{WaysTable, "ways.csv", element.WayColumns},
	{WayNodesTable, "ways_nodes.csv", element.WayNodeColumns},
	{WayTagsTable, "ways_tags.csv", element.TagColumns},
}

type csvFile struct {
	path string
	f    *os.File
	buf  *bufio.Writer
	w    *csv.Writer
	rows int64
}

func (c *csvFile) write(row []string) error {
	for i, v := range row {
		row[i] = strings.ToValidUTF8(v, "\uFFFD")
	}
	if err := c.w.Write(row); err != nil {
		return errors.Wrapf(err, "writing %s", c.path)
	}
	c.rows++
	return nil
}

func (c *csvFile) close() error {
	c.w.Flush()
	err := c.w.Error()
	if err == nil {
		err = c.buf.Flush()
	}
	if cerr := c.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "closing %s", c.path)
	}
	return nil
}

// CSVWriter writes bundles into one CSV file per table.
type CSVWriter struct {
	files map[string]*csvFile
}

// Create creates (or truncates) the CSV files of all Tables in dir and
// writes the header rows.
func Create(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating output dir")
	}
	w := &CSVWriter{files: make(map[string]*csvFile, len(Tables))}
	for _, t := range Tables {
		path := filepath.Join(dir, t.File)
		f, err := os.Create(path)
		if err != nil {
			w.Close()
			return nil, errors.Wrap(err, "creating output file")
		}
		buf := bufio.NewWriterSize(f, 256*1024)
		c := &csvFile{path: path, f: f, buf: buf, w: csv.NewWriter(buf)}
		w.files[t.Name] = c
		if err := c.w.Write(t.Columns); err != nil {
			w.Close()
			return nil, errors.Wrapf(err, "writing header of %s", path)
		}
	}
	return w, nil
}

// Write writes the primary record, the tags and the way nodes of b.
func (w *CSVWriter) Write(b *shape.Bundle) error {
	if b.Node != nil {
		if err := w.files[NodesTable].write(b.Node.Row()); err != nil {
			return err
		}
		return w.writeTags(NodeTagsTable, b.Tags)
	}
	if b.Way != nil {
		if err := w.files[WaysTable].write(b.Way.Row()); err != nil {
			return err
		}
		if err := w.writeTags(WayTagsTable, b.Tags); err != nil {
			return err
		}
		for i := range b.WayNodes {
			if err := w.files[WayNodesTable].write(b.WayNodes[i].Row()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *CSVWriter) writeTags(table string, tags []element.TagRecord) error {
	for i := range tags {
		if err := w.files[table].write(tags[i].Row()); err != nil {
			return err
		}
	}
	return nil
}

// Rows returns the number of rows written to table, without header.
func (w *CSVWriter) Rows(table string) int64 {
	if c, ok := w.files[table]; ok {
		return c.rows
	}
	return 0
}

// Path returns the file name of table.
func (w *CSVWriter) Path(table string) string {
	if c, ok := w.files[table]; ok {
		return c.path
	}
	return ""
}

// Close flushes and closes all files. Close can be called multiple times.
func (w *CSVWriter) Close() error {
	var err error
	for _, t := range Tables {
		c, ok := w.files[t.Name]
		if !ok || c.f == nil {
			continue
		}
		if cerr := c.close(); cerr != nil && err == nil {
			err = cerr
		}
		c.f = nil
	}
	return err
}
