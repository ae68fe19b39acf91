package postgis

import (
	"database/sql"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/omniscale/osmcsv/log"
)

// disableDefaultSslOnLocalhost adds sslmode=disable to params
// when host is localhost/127.0.0.1 and the sslmode param and
// PGSSLMODE environment are both not set. Values can be quoted,
// as returned by pq.ParseURL.
func disableDefaultSslOnLocalhost(params string) string {
	isLocalHost := false
	for _, p := range strings.Fields(params) {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "sslmode":
			return params
		case "host":
			host := strings.Trim(kv[1], "'")
			isLocalHost = host == "localhost" || host == "127.0.0.1"
		}
	}

	if !isLocalHost {
		return params
	}

	if _, ok := os.LookupEnv("PGSSLMODE"); ok {
		return params
	}

	return params + " sslmode=disable"
}

func rollbackIfTx(tx **sql.Tx) {
	if *tx != nil {
		if err := (*tx).Rollback(); err != nil {
			log.Println("[error] rollback failed:", err)
		}
	}
}

// loadTable replaces the rows of the table with its CSV file in dir.
func loadTable(tx *sql.Tx, spec *TableSpec, dir string) (int64, error) {
	f, err := os.Open(filepath.Join(dir, spec.File))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sql := spec.CreateTableSQL()
	if _, err := tx.Exec(sql); err != nil {
		return 0, &SQLError{sql, err}
	}
	sql = spec.TruncateSQL()
	if _, err := tx.Exec(sql); err != nil {
		return 0, &SQLError{sql, err}
	}

	sql = spec.CopySQL()
	stmt, err := tx.Prepare(sql)
	if err != nil {
		return 0, &SQLError{sql, err}
	}
	defer stmt.Close()

	n, err := copyRows(csv.NewReader(f), spec, func(values []interface{}) error {
		_, err := stmt.Exec(values...)
		return err
	})
	if err != nil {
		return n, err
	}
	// flush buffered COPY data
	if _, err := stmt.Exec(); err != nil {
		return n, &SQLError{sql, err}
	}
	return n, nil
}

// copyRows passes all rows after the header of r to insert.
func copyRows(r *csv.Reader, spec *TableSpec, insert func([]interface{}) error) (int64, error) {
	header, err := r.Read()
	if err == io.EOF {
		return 0, errors.Errorf("empty file %s", spec.File)
	}
	if err != nil {
		return 0, err
	}
	for i, col := range spec.Columns {
		if i >= len(header) || header[i] != col.Name {
			return 0, errors.Errorf("unexpected header %v in %s", header, spec.File)
		}
	}

	var n int64
	for {
		row, err := r.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		values, err := spec.Values(row)
		if err != nil {
			return n, errors.Wrapf(err, "row %d of %s", n+1, spec.File)
		}
		if err := insert(values); err != nil {
			return n, errors.Wrapf(err, "row %d of %s", n+1, spec.File)
		}
		n++
	}
}
