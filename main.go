// Package main is the entry point of the dotplay command line.
package main

import (
	"fmt"
	"os"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/cmd"
	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/config"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/samber/lo"
)

func main() {
	if err := config.Setup(); err != nil {
		// defaults are still in place, so keep going
		fmt.Fprintln(os.Stderr, style.Fg(color.Yellow)("config: "+err.Error()))
	}

	lo.Must0(log.Setup())

	go animation.DownloadCache().CollectGarbage()

	cmd.Execute()
}
