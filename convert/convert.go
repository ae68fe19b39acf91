// Package convert runs the whole pipeline: it reads all nodes and ways of
// an OSM file, shapes and optionally validates them, and writes the CSV
// tables.
package convert

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/omniscale/osmcsv/config"
	"github.com/omniscale/osmcsv/log"
	"github.com/omniscale/osmcsv/mapping"
	"github.com/omniscale/osmcsv/parser"
	"github.com/omniscale/osmcsv/shape"
	"github.com/omniscale/osmcsv/stats"
	"github.com/omniscale/osmcsv/validate"
	"github.com/omniscale/osmcsv/writer"
)

// Elements are the element names that are read from the input.
var Elements = []string{"node", "way"}

const progressInterval = 10 * time.Second

// Run converts opts.Read into the CSV files in opts.OutDir. The first
// parse, shape, validation or write error stops the run, files written
// so far are left as they are.
func Run(opts config.ConvertOptions) (*stats.Counts, error) {
	defer log.Step("Converting " + opts.Read)()

	rules := mapping.DefaultRules()
	if opts.RulesFile != "" {
		var err error
		rules, err = mapping.FromFile(opts.RulesFile)
		if err != nil {
			return nil, err
		}
	}

	var validator *validate.Validator
	if opts.Validate {
		schema := validate.DefaultSchema()
		if opts.SchemaFile != "" {
			var err error
			schema, err = validate.SchemaFromFile(opts.SchemaFile)
			if err != nil {
				return nil, err
			}
		}
		validator = validate.New(schema)
	}

	var metrics *stats.Metrics
	if opts.MetricsFile != "" {
		metrics = stats.NewMetrics("")
		metrics.SetValidated(opts.Validate)
		log.Printf("[info] metrics of run %s are written to %s", metrics.RunID(), opts.MetricsFile)
	}

	if size, err := stats.FileSize(opts.Read); err == nil {
		log.Printf("[info] %s: %s", opts.Read, size)
	}

	src, err := parser.Open(opts.Read, Elements)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	w, err := writer.Create(opts.OutDir)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	st := stats.NewStatistics(progressInterval, metrics)
	p := &pipeline{
		shaper:    shape.New(rules),
		validator: validator,
		writer:    w,
		stats:     st,
	}
	if err := p.run(src); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	st.Print()
	for _, t := range writer.Tables {
		metrics.SetRows(t.Name, w.Rows(t.Name))
		if size, err := stats.FileSize(w.Path(t.Name)); err == nil {
			log.Printf("[info] %s: %s (%d rows)", w.Path(t.Name), size, w.Rows(t.Name))
		}
	}

	if opts.MetricsFile != "" {
		metrics.SetDuration(st.Elapsed())
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return nil, errors.Wrap(err, "writing metrics")
		}
	}

	counts := st.Counts()
	return &counts, nil
}

type pipeline struct {
	shaper    *shape.Shaper
	validator *validate.Validator
	writer    *writer.CSVWriter
	stats     *stats.Statistics
}

// run processes all elements of src in file order.
func (p *pipeline) run(src parser.Source) error {
	for {
		e, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading input")
		}

		b, err := p.shaper.Shape(e)
		if err != nil {
			return errors.Wrap(err, "shaping element")
		}
		if p.validator != nil {
			if err := p.validator.Validate(b); err != nil {
				return err
			}
		}
		if err := p.writer.Write(b); err != nil {
			return err
		}

		if b.Node != nil {
			p.stats.AddNodes(1)
		} else {
			p.stats.AddWays(1)
			p.stats.AddWayNodes(len(b.WayNodes))
		}
		p.stats.AddTags(len(b.Tags), len(e.ChildrenNamed("tag"))-len(b.Tags))
	}
}
