package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/omniscale/osmcsv"
	"github.com/omniscale/osmcsv/audit"
	"github.com/omniscale/osmcsv/config"
	"github.com/omniscale/osmcsv/convert"
	"github.com/omniscale/osmcsv/database/postgis"
	"github.com/omniscale/osmcsv/log"
	"github.com/omniscale/osmcsv/mapping"
	"github.com/omniscale/osmcsv/parser"
)

func PrintCmds() {
	fmt.Fprintf(os.Stderr, "Usage: %s COMMAND [args]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Available commands:")
	fmt.Fprintln(os.Stderr, "\tconvert")
	fmt.Fprintln(os.Stderr, "\taudit")
	fmt.Fprintln(os.Stderr, "\tload")
	fmt.Fprintln(os.Stderr, "\tversion")
}

// checkOptions exits for invalid command line options.
func checkOptions(err error) {
	if err == nil {
		return
	}
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if oerr, ok := err.(*config.OptionsError); ok {
		fmt.Fprintln(os.Stderr, "errors in config/options:")
		for _, err := range oerr.Errs {
			fmt.Fprintf(os.Stderr, "\t%s\n", err)
		}
		os.Exit(2)
	}
	log.Fatal(err)
}

func main() {
	if len(os.Args) <= 1 {
		PrintCmds()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "convert":
		opts, err := config.ParseConvert(os.Args[2:], os.Stderr)
		checkOptions(err)
		log.SetQuiet(opts.Quiet)
		if _, err := convert.Run(*opts); err != nil {
			log.Fatal(err)
		}
	case "audit":
		opts, err := config.ParseAudit(os.Args[2:], os.Stderr)
		checkOptions(err)
		log.SetQuiet(opts.Quiet)
		if err := runAudit(opts); err != nil {
			log.Fatal(err)
		}
	case "load":
		opts, err := config.ParseLoad(os.Args[2:], os.Stderr)
		checkOptions(err)
		log.SetQuiet(opts.Quiet)
		if err := runLoad(opts); err != nil {
			log.Fatal(err)
		}
	case "version":
		fmt.Println(osmcsv.Version)
		os.Exit(0)
	default:
		PrintCmds()
		log.Fatalf("invalid command: '%s'", os.Args[1])
	}
	os.Exit(0)
}

func runAudit(opts *config.AuditOptions) error {
	rules := mapping.DefaultRules()
	if opts.RulesFile != "" {
		var err error
		if rules, err = mapping.FromFile(opts.RulesFile); err != nil {
			return err
		}
	}
	files, err := parser.Glob(opts.Read)
	if err != nil {
		return err
	}

	a := audit.New(rules, opts.Examples, opts.ValueKeys)
	for _, fname := range files {
		if err := auditFile(a, fname); err != nil {
			return err
		}
	}
	return a.Report(os.Stdout)
}

func auditFile(a *audit.Auditor, fname string) error {
	defer log.Step("Auditing " + fname)()
	src, err := parser.Open(fname, nil)
	if err != nil {
		return err
	}
	defer src.Close()
	return a.Run(src)
}

func runLoad(opts *config.LoadOptions) error {
	loader, err := postgis.New(postgis.Config{
		ConnectionParams: opts.Connection,
		Schema:           opts.SchemaName,
	})
	if err != nil {
		return err
	}
	defer loader.Close()

	_, err = loader.Load(opts.OutDir)
	return err
}
