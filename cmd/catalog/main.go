// Command catalog lists the public products served by the academy API.
//
//	catalog list
//	catalog get <id>
//	catalog list --base-url https://academy.example.com/api --json
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
