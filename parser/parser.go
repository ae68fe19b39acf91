// Package parser opens OSM files and returns their elements one by one,
// independent of the file format.
package parser

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/omniscale/osmcsv/element"
	"github.com/omniscale/osmcsv/log"
	"github.com/omniscale/osmcsv/parser/osmxml"
	"github.com/omniscale/osmcsv/parser/pbf"
)

// Source returns elements in file order. Next returns io.EOF after the
// last element.
type Source interface {
	Next() (*element.Element, error)
	Close() error
}

type xmlSource struct {
	*osmxml.Parser
	closers []io.Closer
}

func (s *xmlSource) Close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if cerr := s.closers[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type pbfSource struct {
	*pbf.Parser
	f *os.File
}

func (s *pbfSource) Close() error {
	s.Parser.Close()
	return s.f.Close()
}

// Open opens filename and returns a Source for all elements with the given
// names. .osm.pbf files are read with the PBF parser, all other files as
// OSM XML, optionally compressed with gzip (.gz) or bzip2 (.bz2).
func Open(filename string, elements []string) (Source, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening OSM file")
	}

	if strings.HasSuffix(filename, ".pbf") {
		p, err := pbf.New(f, pbf.Config{Elements: elements})
		if err != nil {
			f.Close()
			return nil, err
		}
		header, err := p.Header()
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "reading PBF header")
		}
		if !header.Time.IsZero() && header.Time.Unix() != 0 {
			log.Printf("[info] reading %s with data till %v", filename, header.Time.Local())
		}
		return &pbfSource{Parser: p, f: f}, nil
	}

	src := &xmlSource{closers: []io.Closer{f}}
	var r io.Reader = bufio.NewReaderSize(f, 64*1024)
	switch {
	case strings.HasSuffix(filename, ".gz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "opening gzip stream")
		}
		src.closers = append(src.closers, gz)
		r = gz
	case strings.HasSuffix(filename, ".bz2"):
		r = bzip2.NewReader(r)
	}
	src.Parser = osmxml.New(r, osmxml.Config{Elements: elements})
	return src, nil
}

// Glob returns all files that match pattern in lexical order. ** matches
// any number of directories. A pattern without meta characters matches
// itself, even if the file does not exist.
func Glob(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}
	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no files match %q", pattern)
	}
	sort.Strings(files)
	return files, nil
}
