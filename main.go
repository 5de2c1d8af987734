package main

import (
	"errors"
	"github.com/urfave/cli/v2"
	"linktree/options"
	"linktree/replay"
	"linktree/util"
	"log"
	"os"
)

const VERSION = "1.0.0"

func main() {
	cli.AppHelpTemplate =
		`NAME:
   linktree - 1.0.0 - Replay linked list and tree scenario scripts and check their expectations.

USAGE:
   linktree --src value        [optional flags]

OPTIONS:
   --src value, -s value      directory holding scenario scripts (*.lt), or a git clone when --rev is given
   --rev value, -r value      commit-ish revision to replay scenario scripts from, instead of the working tree
   --include value, -i value  patterns of script paths to include, comma delimited, may contain any glob pattern
   --exclude value, -e value  patterns of script paths to exclude, comma delimited, may contain any glob pattern
   --stats-out value          write replay statistics as json to this file
   --workers value            number of scenario scripts replayed concurrently (default: 4)
   --verbose, --vv            verbose logging (default: false)
   --fail-fast                stop a script at its first failed expectation (default: false)
   --ignore-case              ignore case when checking path against inclusion patterns (default: false)
   --include-noise-dirs       don't filter out noisy directory names in paths (vendor, node_modules etc) (default: false)
   --help, -h                 show help (default: false)
   --version, -v              print the version (default: false)

EXIT CODES:
  0    Success
  201  Source path is invalid (fs-wise)
  202  Source path is invalid (git-wise)
  203  Stats output path is invalid
  205  Provided revision could not be found
  210  Scenario script syntax error
  211  Scenario expectation failed
  1    Any other error
`

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
	app := &cli.App{
		Name:    "linktree",
		Usage:   "Replay linked list and tree scenario scripts and check their expectations.",
		Flags:   options.Flags,
		Version: VERSION,
		Action: func(ctx *cli.Context) error {
			opts, err := options.ParseOptions(ctx)
			if err != nil {
				return err
			}
			replayStats, err := replay.Run(opts)
			if err == nil {
				log.Printf("Completed successfully: %v scripts, %v expectations", replayStats.TotalScriptCount, replayStats.ExpectationCount)
			}
			return err
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Printf("failed: %v", err)
		var errorWithCode *util.ErrorWithCode
		if errors.As(err, &errorWithCode) {
			os.Exit(errorWithCode.StatusCode)
		}
		os.Exit(1)
	}
}
