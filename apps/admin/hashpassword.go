package main

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword prints the bcrypt hash to export as {ENV}_ADMIN_PASSWORDHASH.
func (cli *commandLine) hashPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fmt.Printf("ADMIN_PASSWORDHASH=%s\n", hash)
	return nil
}
