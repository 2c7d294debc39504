// Command aliasdex manages species name aliases in a local or Drive-hosted
// SQLite database.
package main

import (
	"os"

	"github.com/roach88/aliasdex/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
