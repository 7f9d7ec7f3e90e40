// Package sqlsplit ties the tokenizer to the command line: read a SQL
// file, print its token table or JSON projection, or apply the split
// statements to a database.
package sqlsplit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/k0kubun/pp/v3"

	"github.com/sqldef/sqlsplit/database"
	"github.com/sqldef/sqlsplit/parser"
)

type Options struct {
	SqlFile string
	JSON    bool
	Debug   bool

	// Exec applies the statements to the configured database instead of
	// printing tokens.
	Exec     bool
	DbConfig database.Config
}

// Run is the main function of the sqlsplit CLI.
func Run(options *Options) error {
	sql, err := ReadFile(options.SqlFile)
	if err != nil {
		return fmt.Errorf("failed to read '%s': %w", options.SqlFile, err)
	}

	if options.Exec {
		db, err := database.Open(options.DbConfig)
		if err != nil {
			return err
		}
		defer db.Close()
		return database.RunStatements(context.Background(), db, parser.Parse(sql))
	}

	if options.JSON {
		return renderJSON(os.Stdout, parser.Parse(sql))
	}

	stream := parser.Parse(sql)
	for i := 0; ; i++ {
		stmt, ok := stream.Next()
		if !ok {
			return nil
		}
		if i > 0 {
			fmt.Println()
		}
		if options.Debug {
			pp.Fprintln(os.Stderr, stmt.Tokens())
		}
		RenderTable(os.Stdout, stmt)
	}
}

// ReadFile reads the whole file, or stdin when the path is "-".
func ReadFile(filepath string) (string, error) {
	var buf []byte
	var err error
	if filepath == "-" {
		buf, err = io.ReadAll(os.Stdin)
	} else {
		buf, err = os.ReadFile(filepath)
	}
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

var tableHeader = [4]string{"START", "END", "OFFSET", "TOKEN"}

// RenderTable prints one statement as a fixed-column table:
//
//	START | END  | OFFSET | TOKEN
//	1:1   | 1:6  | 0      | SELECT
//	...
func RenderTable(out io.Writer, stmt *parser.Statement) {
	rows := make([][4]string, 0, len(stmt.Tokens())+1)
	rows = append(rows, tableHeader)
	for _, tok := range stmt.Tokens() {
		rows = append(rows, [4]string{
			fmt.Sprintf("%d:%d", tok.Start.Line, tok.Start.Column),
			fmt.Sprintf("%d:%d", tok.End.Line, tok.End.Column),
			strconv.FormatUint(uint64(tok.Start.Offset), 10),
			tok.Text(),
		})
	}

	var widths [3]int
	for _, row := range rows {
		for i := range widths {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%-*s | %-*s | %-*s | %s\n",
			widths[0], row[0], widths[1], row[1], widths[2], row[2], row[3])
	}
}

func renderJSON(out io.Writer, stream *parser.StatementStream) error {
	stmts := stream.Statements()
	if stmts == nil {
		stmts = []*parser.Statement{}
	}
	buf, err := json.MarshalIndent(stmts, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(buf))
	return err
}
