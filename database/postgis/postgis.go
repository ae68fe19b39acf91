// Package postgis loads the CSV tables of a convert run into PostgreSQL.
package postgis

import (
	"database/sql"
	"fmt"
	"strings"

	pq "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/omniscale/osmcsv/log"
)

type SQLError struct {
	query         string
	originalError error
}

func (e *SQLError) Error() string {
	return fmt.Sprintf("SQL Error: %s in query %s", e.originalError.Error(), e.query)
}

func (e *SQLError) Unwrap() error {
	return e.originalError
}

// Config of a Loader.
type Config struct {
	// ConnectionParams is a postgres:// or postgis:// URL or a list of
	// key=value parameters.
	ConnectionParams string
	// Schema of the created tables, defaults to public.
	Schema string
}

type Loader struct {
	Db     *sql.DB
	Schema string
	Tables []*TableSpec
	Params string
}

// New parses the connection parameters and opens the database.
func New(conf Config) (*Loader, error) {
	params, err := connectionParams(conf.ConnectionParams)
	if err != nil {
		return nil, err
	}
	l := &Loader{
		Schema: conf.Schema,
		Params: params,
	}
	if l.Schema == "" {
		l.Schema = "public"
	}
	l.Tables = TableSpecs(l.Schema)

	if err := l.Open(); err != nil {
		return nil, err
	}
	return l, nil
}

func connectionParams(conn string) (string, error) {
	if conn == "" {
		return "", errors.New("missing connection")
	}
	if strings.HasPrefix(conn, "postgis://") {
		conn = strings.Replace(conn, "postgis", "postgres", 1)
	}
	params := conn
	if strings.HasPrefix(conn, "postgres://") || strings.HasPrefix(conn, "postgresql://") {
		var err error
		params, err = pq.ParseURL(conn)
		if err != nil {
			return "", errors.Wrap(err, "parsing connection URL")
		}
	}
	return disableDefaultSslOnLocalhost(params), nil
}

func (l *Loader) Open() error {
	var err error

	l.Db, err = sql.Open("postgres", l.Params)
	if err != nil {
		return err
	}
	// check that the connection actually works
	err = l.Db.Ping()
	if err != nil {
		l.Db.Close()
		return errors.Wrap(err, "connecting to database")
	}
	return nil
}

func (l *Loader) Close() error {
	return l.Db.Close()
}

func (l *Loader) createSchema() error {
	if l.Schema == "public" {
		return nil
	}
	sql := fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, l.Schema)
	if _, err := l.Db.Exec(sql); err != nil {
		return &SQLError{sql, err}
	}
	return nil
}

// Load creates all tables and replaces their content with the CSV files in
// dir. All tables are loaded in a single transaction, a failed load leaves
// the database unchanged.
func (l *Loader) Load(dir string) (map[string]int64, error) {
	defer log.Step("Loading tables")()

	if err := l.createSchema(); err != nil {
		return nil, err
	}

	tx, err := l.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer rollbackIfTx(&tx)

	rows := make(map[string]int64, len(l.Tables))
	for _, spec := range l.Tables {
		n, err := loadTable(tx, spec, dir)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s", spec.Name)
		}
		log.Printf("[info] loaded %d rows into %s", n, spec.FullName())
		rows[spec.Name] = n
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing")
	}
	tx = nil
	return rows, nil
}
