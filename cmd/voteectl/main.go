// Command voteectl runs voting instructions and reads directly against the configured store.
//
//	voteectl -identity <base58> create-poll "Lunch spot" 2025-01-01T12:00:00Z 2025-01-02T12:00:00Z
//	voteectl -identity <base58> -f script.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/jonboulle/clockwork"

	"votee/internal/config"
	"votee/internal/domain/program"
	"votee/internal/platform/pda"
	"votee/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	identity := flag.String("identity", "", "payer identity (base58) that signs instructions")
	script := flag.String("f", "", "file with one command per line")
	programFlag := flag.String("program", "", "program address (base58); defaults to PROGRAM_ID or the built-in address")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: voteectl [flags] <command> [args]\n\n%s\nflags:\n", usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}

	programID, err := resolveProgramID(*programFlag, cfg.ProgramID)
	if err != nil {
		logger.Error("invalid program id", "error", err)
		os.Exit(2)
	}
	var payer pda.Address
	if *identity != "" {
		if payer, err = pda.Parse(*identity); err != nil {
			logger.Error("invalid identity", "error", err)
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Error("store open error", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	c := &cli{
		prog:  program.NewService(programID, stores.Accounts, clockwork.NewRealClock()),
		payer: payer,
		out:   os.Stdout,
	}

	switch {
	case *script != "":
		f, ferr := os.Open(*script)
		if ferr != nil {
			logger.Error("open script", "error", ferr)
			os.Exit(1)
		}
		err = c.runScript(ctx, f)
		_ = f.Close()
	case flag.NArg() > 0:
		err = c.exec(ctx, flag.Args())
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func resolveProgramID(flagValue, envValue string) (pda.Address, error) {
	switch {
	case flagValue != "":
		return pda.Parse(flagValue)
	case envValue != "":
		return pda.Parse(envValue)
	default:
		return pda.FromName("votee"), nil
	}
}
