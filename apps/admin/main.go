package main

import (
	"log"
	"os"

	"github.com/syllabio/backend/core"
	"github.com/syllabio/backend/core/coverage"
	"github.com/syllabio/backend/core/syllabus"
	appfs "github.com/syllabio/backend/fs"
	"github.com/syllabio/backend/storage/database"
	sqlxrepos "github.com/syllabio/backend/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	idx, err := syllabus.Load(appfs.FS)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:     db,
		covSvc: coverage.NewService(idx, sqlxrepos.NewCoverageRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
