package main

import (
	"context"

	"github.com/syllabio/backend/core/coverage"
	"github.com/syllabio/backend/core/syllabus"
)

func (cli *commandLine) remove(phone, class string) error {
	cls, ok := syllabus.ParseClass(class)
	if !ok {
		return coverage.ErrUnknownClass
	}
	return cli.covSvc.Remove(context.Background(), phone, cls)
}
