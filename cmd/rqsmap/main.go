// # cmd/rqsmap/main.go
package main

import (
	"os"

	"github.com/da11an/repo-query-surface/internal/cliapp"
)

func main() {
	os.Exit(cliapp.Run(os.Args[1:]))
}
