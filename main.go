package main

import (
	"os"

	"github.com/zsprackett/termconfirm/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
