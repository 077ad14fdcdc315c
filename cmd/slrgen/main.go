/*
Slrgen builds SLR(1) parse tables from a grammar definition.

Usage:

	slrgen [flags] -g FILE
	slrgen [flags] --serve
	slrgen [flags] --repl

Slrgen reads a grammar source file, builds its canonical LR(0) automaton, and
derives the SLR(1) ACTION/GOTO table, reporting any shift/reduce,
reduce/reduce, or undefined-nonterminal error it finds along the way. It can
also run as an HTTP server exposing the same build pipeline over a small REST
API, or as an interactive REPL for iterating on a grammar.

The flags are:

	-v, --version
		Give the current version of slrgen and then exit.

	-c, --config FILE
		Load the given TOML configuration file. If not given, built-in
		defaults are used.

	-g, --grammar FILE
		Build the SLR(1) table for the grammar source in FILE and print it,
		then exit.

	-f, --format text|json
		Display format for -g output. Defaults to the value in the loaded
		config, which defaults to "text".

	-r, --repl
		Start an interactive session: read grammar source from stdin (ending
		with a blank line), build it, display the result, and repeat.

	--serve
		Start the HTTP API server instead of building a single grammar.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address when serving. Must be in
		BIND_ADDRESS:PORT or :PORT format. Defaults to the config file's
		server.bind_address, or ":8080" if that is not set.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing and validating bearer tokens when
		serving. If not given, falls back to the config file's
		server.jwt_secret, and if that is empty, a random secret is
		generated (all issued tokens become invalid at shutdown).

	--db DRIVER[:PARAMS]
		Use the given persistence driver when serving. DRIVER must be one of
		"inmem" or "sqlite". sqlite takes the path to its data directory,
		e.g. "sqlite:./data". Defaults to the config file's store settings,
		or "inmem" if that is not set.
*/
package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/slrgen/internal/grammar"
	"github.com/dekarrin/slrgen/internal/input"
	"github.com/dekarrin/slrgen/internal/slrbuild"
	"github.com/dekarrin/slrgen/internal/slrcfg"
	"github.com/dekarrin/slrgen/internal/version"
	"github.com/dekarrin/slrgen/server"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad flags or arguments were given.
	ExitUsageError

	// ExitBuildError indicates the grammar could not be built into a table.
	ExitBuildError

	// ExitServerError indicates the HTTP server could not be started.
	ExitServerError
)

var (
	returnCode int = ExitSuccess

	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of slrgen and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Load the given TOML configuration file.")
	flagGrammar = pflag.StringP("grammar", "g", "", "Build the SLR(1) table for the grammar source in FILE.")
	flagFormat  = pflag.StringP("format", "f", "", "Display format for -g output: text or json.")
	flagRepl    = pflag.BoolP("repl", "r", false, "Start an interactive grammar-building session.")
	flagServe   = pflag.Bool("serve", false, "Start the HTTP API server.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address when serving.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for bearer token signing when serving.")
	flagDB      = pflag.String("db", "", "Use the given persistence driver when serving.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := slrcfg.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not load config: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	format := cfg.Format
	if pflag.Lookup("format").Changed {
		format = *flagFormat
	}
	if format != "text" && format != "json" {
		fmt.Fprintf(os.Stderr, "ERROR: --format must be \"text\" or \"json\"\n")
		returnCode = ExitUsageError
		return
	}

	switch {
	case *flagServe:
		runServe(cfg)
	case *flagRepl:
		runRepl(format)
	case *flagGrammar != "":
		runBuildFile(*flagGrammar, format)
	default:
		fmt.Fprintf(os.Stderr, "Nothing to do: give -g, -r, or --serve\nDo -h for help.\n")
		returnCode = ExitUsageError
	}
}

func runBuildFile(path string, format string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	table, buildErr := slrbuild.Build(string(src))
	printBuildResult(table, buildErr, format)
	if buildErr != nil {
		returnCode = ExitBuildError
	}
}

func runRepl(format string) {
	fmt.Println("Enter grammar source, ending with a blank line. Ctrl-D to quit.")

	reader, err := input.NewInteractiveReader("slrgen> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}
	defer reader.Close()
	reader.AllowBlank(true)

	for {
		var lines []string
		for {
			line, err := reader.ReadLine()
			if err != nil {
				if err != io.EOF {
					fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
					returnCode = ExitUsageError
				}
				return
			}
			if strings.TrimSpace(line) == "" {
				break
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}

		table, buildErr := slrbuild.Build(strings.Join(lines, "\n"))
		printBuildResult(table, buildErr, format)
	}
}

func printBuildResult(table *grammar.SLRTable, buildErr error, format string) {
	if buildErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", buildErr.Error())
		return
	}

	switch format {
	case "json":
		summary := slrbuild.Summarize(table)
		out, err := json.MarshalIndent(struct {
			StateCount      int    `json:"state_count"`
			ProductionCount int    `json:"production_count"`
			Grammar         string `json:"grammar"`
			Table           string `json:"table"`
		}{
			StateCount:      summary.StateCount,
			ProductionCount: summary.ProductionCount,
			Grammar:         grammar.DisplayGrammar(table.Grammar),
			Table:           grammar.DisplayTable(table),
		}, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: could not marshal JSON output: %s\n", err.Error())
			returnCode = ExitBuildError
			return
		}
		fmt.Println(string(out))
	default:
		fmt.Print(grammar.DisplayGrammar(table.Grammar))
		fmt.Print(grammar.DisplayAutomaton(table.Automaton))
		fmt.Print(grammar.DisplayTable(table))
	}
}

func runServe(cfg slrcfg.Config) {
	addr, port, err := resolveListenAddr(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	secret, err := resolveSecret(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	srv, err := server.New(secret, dbPath)
	if err != nil {
		log.Printf("FATAL could not start server: %s", err.Error())
		returnCode = ExitServerError
		return
	}
	defer srv.Close()

	log.Printf("INFO  Starting slrgen server %s...", version.ServerCurrent)
	if err := srv.ServeForever(addr, port); err != nil {
		log.Printf("FATAL server stopped: %s", err.Error())
		returnCode = ExitServerError
	}
}

func resolveListenAddr(cfg slrcfg.Config) (addr string, port int, err error) {
	listenAddr := cfg.Server.BindAddress
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	bindParts := strings.SplitN(listenAddr, ":", 2)
	if len(bindParts) != 2 {
		return "", 0, fmt.Errorf("listen address is not in ADDRESS:PORT or :PORT format")
	}

	port, err = strconv.Atoi(bindParts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%q is not a valid port number", bindParts[1])
	}
	return bindParts[0], port, nil
}

func resolveSecret(cfg slrcfg.Config) ([]byte, error) {
	secretStr := cfg.Server.JWTSecret
	if pflag.Lookup("secret").Changed {
		secretStr = *flagSecret
	}

	if secretStr == "" {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("could not generate token secret: %w", err)
		}
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
		return secret, nil
	}

	secret := []byte(secretStr)
	for len(secret) < 32 {
		secret = append(secret, secret...)
	}
	if len(secret) > 64 {
		secret = secret[:64]
	}
	return secret, nil
}

func resolveDBPath(cfg slrcfg.Config) (string, error) {
	driver := cfg.Store.Driver
	dsn := cfg.Store.DSN

	if pflag.Lookup("db").Changed {
		dbParts := strings.SplitN(*flagDB, ":", 2)
		if len(dbParts) != 2 && *flagDB != "inmem" {
			return "", fmt.Errorf("not a valid DB string: %q", *flagDB)
		}
		if len(dbParts) != 2 {
			dbParts = []string{"inmem", ""}
		}
		driver = dbParts[0]
		dsn = dbParts[1]
	}

	switch strings.ToLower(driver) {
	case "", "inmem":
		return "", nil
	case "sqlite":
		if err := os.MkdirAll(dsn, 0770); err != nil {
			return "", fmt.Errorf("could not build data directory: %w", err)
		}
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported DB driver: %q", driver)
	}
}
