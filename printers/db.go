package printers

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/pouriyajamshidi/optrun/option"
	"github.com/pouriyajamshidi/optrun/statistics"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const (
	eventTypeValue      = "value"
	eventTypeStatistics = "statistics"
)

const (
	dataTableSchema = `CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY,
    event_type TEXT NOT NULL, -- value or statistics
    timestamp DATETIME,
    scenario TEXT NOT NULL,

    value INTEGER,
    formatted TEXT,
    format TEXT,

    total_visited INTEGER,
    total_passed INTEGER,
    total_rejected INTEGER,
    pass_rate REAL,
    passed_values TEXT,

    value_min INTEGER,
    value_avg REAL,
    value_max INTEGER,

    start_time DATETIME,
    end_time DATETIME,
    total_duration TEXT
	);`

	valueSaveSchema = `INSERT INTO %s (
	event_type,
	timestamp,
	scenario,
	value,
	formatted,
	format) VALUES (?, ?, ?, ?, ?, ?);`

	statSaveSchema = `INSERT INTO %s (
	event_type,
	timestamp,
	scenario,
	total_visited,
	total_passed,
	total_rejected,
	pass_rate,
	passed_values,
	value_min,
	value_avg,
	value_max,
	start_time,
	end_time,
	total_duration) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
)

const defaultTablePrefix = "optrun"

// DatabasePrinter represents a SQLite database connection for storing run results.
type DatabasePrinter struct {
	Conn      *sqlite.Conn
	DbPath    string
	TableName string
	prefix    string
	opt       options
}

type DatabasePrinterOption = option.Option[DatabasePrinter]

func (p *DatabasePrinter) options() *options {
	return &p.opt
}

// WithTablePrefix replaces the default "optrun" prefix of the table name.
func WithTablePrefix(prefix string) DatabasePrinterOption {
	return func(p *DatabasePrinter) {
		p.prefix = prefix
	}
}

// NewDatabasePrinter opens (or creates) the sqlite3 database at dbPath and
// creates a data table for this session.
func NewDatabasePrinter(dbPath string, opts ...DatabasePrinterOption) (*DatabasePrinter, error) {
	p := &DatabasePrinter{
		DbPath: addDbExtension(dbPath),
		prefix: defaultTablePrefix,
	}
	option.Apply(p, opts...)

	conn, err := sqlite.OpenConn(p.DbPath, sqlite.OpenCreate, sqlite.OpenReadWrite)
	if err != nil {
		return nil, fmt.Errorf("create database %q: %w", p.DbPath, err)
	}

	p.Conn = conn
	p.TableName = sanitizeTableName(p.prefix, time.Now())

	err = sqlitex.Execute(conn, fmt.Sprintf(dataTableSchema, p.TableName), &sqlitex.ExecOptions{})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create data table %q: %w", p.TableName, err)
	}

	return p, nil
}

func addDbExtension(filename string) string {
	if strings.HasSuffix(filename, ".db") {
		return filename
	}

	return filename + ".db"
}

// sanitizeTableName formats the table name as "prefix__year_month_day_hour_minute_sec".
// A table name can't have '.', '-' or ' ' and can't start with a number.
func sanitizeTableName(prefix string, t time.Time) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", ":", "_", " ", "_")

	tableName := fmt.Sprintf("%s__%s",
		replacer.Replace(prefix),
		replacer.Replace(t.Format(time.DateTime)),
	)

	if unicode.IsNumber(rune(tableName[0])) {
		tableName = "_" + tableName
	}

	return tableName
}

// PrintStart prints a message indicating where the scenario results are saved.
func (p *DatabasePrinter) PrintStart(s *statistics.Statistics) {
	fmt.Fprintf(p.opt.writer(), "%s - saving results to: %s\n", s.Scenario, p.DbPath)
}

// PrintValue stores a value that passed the filter.
func (p *DatabasePrinter) PrintValue(s *statistics.Statistics, i int, f Format) {
	err := sqlitex.Execute(p.Conn, fmt.Sprintf(valueSaveSchema, p.TableName), &sqlitex.ExecOptions{
		Args: []any{
			eventTypeValue,
			time.Now().Format(time.DateTime),
			s.Scenario,
			i,
			f.Value(i),
			f.String(),
		},
	})
	if err != nil {
		p.PrintError("Error while writing value %d to the database %q: %s", i, p.DbPath, err)
	}
}

// saveStats saves stats to the database. Min, avg and max stay NULL when nothing passed.
func (p *DatabasePrinter) saveStats(s *statistics.Statistics) error {
	var valueMin, valueAvg, valueMax any
	if s.ValueResults.HasResults {
		valueMin = s.ValueResults.Min
		valueAvg = s.ValueResults.Average
		valueMax = s.ValueResults.Max
	}

	args := []any{
		eventTypeStatistics,
		time.Now().Format(time.DateTime),
		s.Scenario,
		len(s.Visited),
		len(s.Passed),
		s.Rejected(),
		s.PassRate(),
		statistics.JoinInts(s.Passed),
		valueMin,
		valueAvg,
		valueMax,
		s.StartTimeFormatted(),
		s.EndTimeFormatted(),
		s.Duration().String(),
	}

	return sqlitex.Execute(
		p.Conn,
		fmt.Sprintf(statSaveSchema, p.TableName),
		&sqlitex.ExecOptions{Args: args},
	)
}

// PrintStatistics saves scenario statistics to the database.
func (p *DatabasePrinter) PrintStatistics(s *statistics.Statistics) {
	if err := p.saveStats(s); err != nil {
		p.PrintError("Error while writing stats to the database %q: %s", p.DbPath, err)
		return
	}

	fmt.Fprintf(p.opt.writer(), "Statistics for %q have been saved to %q in the table %q\n", s.Scenario, p.DbPath, p.TableName)
}

// PrintError prints an error message to stderr.
func (p *DatabasePrinter) PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Done closes the database connection.
func (p *DatabasePrinter) Done() {
	if p.Conn != nil {
		p.Conn.Close()
		p.Conn = nil
	}
}
