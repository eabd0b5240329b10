package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/syllabio/backend/core/coverage"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db     *sqlx.DB
	covSvc *coverage.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS]          - run database migrations (up, down, status, ...)")
	fmt.Println("  hashpassword                    - hash the admin password for the config (prompted)")
	fmt.Println("  remove -phone PHONE -class CLASS - delete a coverage record")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	removeCmd := flag.NewFlagSet("remove", flag.ExitOnError)
	removePhone := removeCmd.String("phone", "", "The student's phone number.")
	removeClass := removeCmd.String("class", "", `The student class; "11" or "12".`)

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "hashpassword":
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.hashPassword(string(pwd))
	case "remove":
		if err := removeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *removePhone == "" || *removeClass == "" {
			removeCmd.Usage()
			return errHelp
		}
		return cli.remove(*removePhone, *removeClass)
	default:
		cli.printUsage()
		return errHelp
	}
}
