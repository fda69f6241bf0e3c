package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/icon"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().IntP("index", "i", 1, "Which animation of an archive to extract, 1-based")
	convertCmd.Flags().StringP("output", "o", ".", "Directory to write the converted file to")
	convertCmd.Flags().StringP("name", "n", "", "File name stem of the output, defaults to the source's")
	convertCmd.SetOut(os.Stdout)
}

var convertCmd = &cobra.Command{
	Use:   "convert <source>",
	Short: "Convert Lottie JSON to a dotLottie archive, or extract JSON from an archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src := args[0]

		bundle, err := animation.NewLoader().Load(context.Background(), src)
		handleErr(err)

		name := lo.Must(cmd.Flags().GetString("name"))
		if name == "" {
			name = src
		}

		out, err := animation.Convert(bundle, lo.Must(cmd.Flags().GetInt("index"))-1, name)
		handleErr(err)

		target := filepath.Join(lo.Must(cmd.Flags().GetString("output")), out.Name)
		handleErr(writeOutput(target, out.Data))

		cmd.Printf("%s wrote %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Yellow)(target))
	},
}

func writeOutput(path string, data []byte) error {
	if err := filesystem.API().MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	if err := filesystem.API().WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
