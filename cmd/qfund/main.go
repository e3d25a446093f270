package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/solquad/cmd/qfund/app"
	"github.com/iov-one/solquad/commands/server"
	"github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	varHome     *string
	varLogLevel *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".qfund")
	varHome = flag.String("home", defaultHome, "directory to store files under")
	varLogLevel = flag.String("log_level", "*:info", "log level, for example \"*:error\" or \"main:info,*:error\"")
}

func helpMessage() {
	fmt.Println("qfund")
	fmt.Println("        Quadratic funding ABCI application")
	fmt.Println("")
	fmt.Println("help    Print this message")
	fmt.Println("init    Initialize app options in genesis file")
	fmt.Println("        qfund init [-i] [admin address] [escrow balance]")
	fmt.Println("start   Run the abci server")
	fmt.Println("        qfund start [-bind address] [-debug]")
	fmt.Println("version Print the app version")
	fmt.Println("")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "qfund")
	logger, err := flags.ParseLogLevel(*varLogLevel, logger, "info")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level: %s\n", err)
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "version":
		fmt.Println(app.Name, app.Version())
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		helpMessage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
