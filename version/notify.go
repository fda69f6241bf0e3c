package version

import (
	"context"
	"fmt"
	"time"

	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/icon"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/dotplay-cli/dotplay/releases/tag/v"+latest),
	)
}
