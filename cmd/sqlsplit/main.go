package main

import (
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/jessevdk/go-flags"
	"golang.org/x/term"

	"github.com/sqldef/sqlsplit"
	"github.com/sqldef/sqlsplit/database"
	"github.com/sqldef/sqlsplit/util"
)

var version string

// Return parsed options, including the SQL filename
func parseOptions(args []string) *sqlsplit.Options {
	var opts struct {
		JSON     bool   `long:"json" description:"Print tokens as JSON instead of a table"`
		Debug    bool   `long:"debug" description:"Dump parsed statements to stderr"`
		Exec     bool   `long:"exec" description:"Apply the statements to a database instead of printing tokens"`
		Type     string `long:"type" description:"Database type for --exec" choice:"mysql" choice:"postgres" choice:"sqlite3" choice:"mssql" default:"mysql"`
		DbName   string `long:"db" description:"Database name, or file path for sqlite3" value-name:"db_name"`
		User     string `short:"U" long:"user" description:"Database user name" value-name:"username" default:"root"`
		Password string `short:"W" long:"password" description:"Database password, overridden by $SQLSPLIT_PASSWORD" value-name:"password"`
		Host     string `short:"h" long:"host" description:"Host to connect to the database server" value-name:"hostname" default:"127.0.0.1"`
		Port     int    `short:"p" long:"port" description:"Port used for the connection" value-name:"port" default:"3306"`
		Socket   string `short:"S" long:"socket" description:"Unix domain socket path to use for connection" value-name:"socket"`
		Prompt   bool   `long:"password-prompt" description:"Force database password prompt"`
		Help     bool   `long:"help" description:"Show this help"`
		Version  bool   `long:"version" description:"Show this version"`
	}

	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[option...] file.sql"
	args, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if len(args) == 0 {
		fmt.Print("No file is specified!\n\n")
		parser.WriteHelp(os.Stdout)
		os.Exit(1)
	} else if len(args) > 1 {
		fmt.Printf("Multiple files are given: %v\n\n", args)
		parser.WriteHelp(os.Stdout)
		os.Exit(1)
	}

	password, ok := os.LookupEnv("SQLSPLIT_PASSWORD")
	if !ok {
		password = opts.Password
	}

	if opts.Prompt {
		fmt.Printf("Enter Password: ")
		pass, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println()
		password = string(pass)
	}

	return &sqlsplit.Options{
		SqlFile: args[0],
		JSON:    opts.JSON,
		Debug:   opts.Debug,
		Exec:    opts.Exec,
		DbConfig: database.Config{
			Type:     opts.Type,
			DbName:   opts.DbName,
			User:     opts.User,
			Password: password,
			Host:     opts.Host,
			Port:     opts.Port,
			Socket:   opts.Socket,
		},
	}
}

func main() {
	util.InitSlog()
	options := parseOptions(os.Args[1:])
	if err := sqlsplit.Run(options); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
