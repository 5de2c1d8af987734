package options

import (
	"fmt"
	"github.com/urfave/cli/v2"
	"linktree/util"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:     "src",
		Aliases:  []string{"s"},
		Usage:    "directory holding scenario scripts (*.lt), or a git clone when --rev is given",
		Required: true,
	},
	&cli.StringFlag{
		Name:     "rev",
		Aliases:  []string{"r"},
		Value:    "",
		Usage:    "commit-ish revision to replay scenario scripts from, instead of the working tree",
		Required: false,
	},
	&cli.StringFlag{
		Name:     "include",
		Aliases:  []string{"i"},
		Value:    "",
		Usage:    "patterns of script paths to include, comma delimited, may contain any glob pattern",
		Required: false,
	},
	&cli.StringFlag{
		Name:     "exclude",
		Aliases:  []string{"e"},
		Value:    "",
		Usage:    "patterns of script paths to exclude, comma delimited, may contain any glob pattern",
		Required: false,
	},
	&cli.StringFlag{
		Name:     "stats-out",
		Value:    "",
		Usage:    "write replay statistics as json to this file",
		Required: false,
	},
	&cli.IntFlag{
		Name:     "workers",
		Value:    4,
		Usage:    "number of scenario scripts replayed concurrently",
		Required: false,
	},
	&cli.BoolFlag{
		Name:     "verbose",
		Aliases:  []string{"vv"},
		Value:    false,
		Usage:    "verbose logging",
		Required: false,
	},
	&cli.BoolFlag{
		Name:     "fail-fast",
		Value:    false,
		Usage:    "stop a script at its first failed expectation",
		Required: false,
	},
	&cli.BoolFlag{
		Name:     "ignore-case",
		Value:    false,
		Usage:    "ignore case when checking path against inclusion patterns",
		Required: false,
	},
	&cli.BoolFlag{
		Name:     "include-noise-dirs",
		Value:    false,
		Usage:    "don't filter out noisy directory names in paths (vendor, node_modules etc)",
		Required: false,
	},
}

type Options struct {
	SourcePath         string
	Revision           string
	IncludePatterns    []string
	ExcludePatterns    []string
	StatsOutputPath    string
	Workers            int
	VerboseLogging     bool
	FailFast           bool
	IgnoreCasePatterns bool
	IncludeNoiseDirs   bool
}

func splitListFlag(flag string) []string {
	if len(flag) == 0 {
		return []string{}
	}
	return strings.Split(flag, ",")
}

func validateDirectory(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist at %v", dirPath)
	}
	if err != nil {
		return fmt.Errorf("directory error at %v: %w", dirPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("directory is actually a file at %v", dirPath)
	}
	return nil
}

func ParseOptions(c *cli.Context) (*Options, error) {
	opts := &Options{
		SourcePath:         c.String("src"),
		Revision:           c.String("rev"),
		IncludePatterns:    splitListFlag(c.String("include")),
		ExcludePatterns:    splitListFlag(c.String("exclude")),
		StatsOutputPath:    c.String("stats-out"),
		Workers:            c.Int("workers"),
		VerboseLogging:     c.Bool("verbose"),
		FailFast:           c.Bool("fail-fast"),
		IgnoreCasePatterns: c.Bool("ignore-case"),
		IncludeNoiseDirs:   c.Bool("include-noise-dirs"),
	}
	err := opts.Validate()
	if err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate checks the paths and clamps Workers. Callers building Options without
// the cli go through it as well.
func (opts *Options) Validate() error {
	err := validateDirectory(opts.SourcePath)
	if err != nil {
		return &util.ErrorWithCode{
			StatusCode:    util.ERROR_BAD_SOURCE_PATH,
			InternalError: fmt.Errorf("source at '%v' is missing or invalid: %v", opts.SourcePath, err),
		}
	}

	if len(opts.Revision) > 0 {
		err = validateDirectory(path.Join(opts.SourcePath, ".git"))
		if err != nil {
			return &util.ErrorWithCode{
				StatusCode:    util.ERROR_BAD_SOURCE_GIT,
				InternalError: fmt.Errorf(".git at '%v' is missing or invalid: %v", opts.SourcePath, err),
			}
		}
	}

	if len(opts.StatsOutputPath) > 0 {
		err = validateDirectory(filepath.Dir(opts.StatsOutputPath))
		if err != nil {
			return &util.ErrorWithCode{
				StatusCode:    util.ERROR_BAD_STATS_PATH,
				InternalError: err,
			}
		}
	}

	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return nil
}

// PathFilter compiles the include and exclude patterns, adding the noisy
// directory exclusions unless IncludeNoiseDirs is set.
func (opts *Options) PathFilter() (*util.PathFilter, error) {
	excludePatterns := opts.ExcludePatterns
	if !opts.IncludeNoiseDirs {
		excludePatterns = union(util.NoisyDirectoryExclusionPatterns(), excludePatterns)
	}
	return util.NewPathFilter(opts.IncludePatterns, excludePatterns, opts.IgnoreCasePatterns)
}

func union(s1 []string, s2 []string) []string {
	if len(s1) == 0 {
		return s2
	}
	if len(s2) == 0 {
		return s1
	}
	unified := make([]string, len(s1)+len(s2))
	i := 0
	for _, item := range s1 {
		unified[i] = item
		i++
	}
	for _, item := range s2 {
		unified[i] = item
		i++
	}
	return unified
}
