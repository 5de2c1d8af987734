package replay

import (
	"fmt"
	"linktree/git"
	"linktree/options"
	"linktree/parallel"
	"linktree/scenario"
	"linktree/stats"
	"linktree/util"
	"log"
	"strings"
)

// Run loads the selected scenario scripts and replays each of them against a
// fresh list and tree. Scripts run concurrently; a structure never leaves its job.
func Run(opts *options.Options) (*stats.ReplayStats, error) {
	filter, err := opts.PathFilter()
	if err != nil {
		return nil, err
	}

	var scripts []*scenario.Script
	if len(opts.Revision) > 0 {
		scripts, err = git.LoadRevision(opts, filter)
	} else {
		scripts, err = scenario.LoadDirectory(opts.SourcePath, filter)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("replaying %v scenario scripts from '%v'", len(scripts), opts.SourcePath)

	replayStats := stats.NewReplayStats()
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	queue := parallel.CreateJobQueue(len(scripts), workers)
	defer queue.Close()

	for _, script := range scripts {
		script := script
		err = queue.Add(func() error {
			return replayScript(opts, script, replayStats)
		})
		if err != nil {
			return nil, err
		}
	}
	err = queue.Wait()
	replayStats.Finalize()

	if len(opts.StatsOutputPath) > 0 {
		writeErr := replayStats.WriteFile(opts.StatsOutputPath)
		if writeErr != nil {
			return replayStats, &util.ErrorWithCode{
				StatusCode:    util.ERROR_BAD_STATS_PATH,
				InternalError: writeErr,
			}
		}
	}

	if err != nil {
		return replayStats, &util.ErrorWithCode{
			StatusCode:    util.ERROR_EXPECTATION_FAILURE,
			InternalError: err,
		}
	}
	return replayStats, nil
}

func replayScript(opts *options.Options, script *scenario.Script, replayStats *stats.ReplayStats) error {
	logf := func(format string, v ...interface{}) {
		if opts.VerboseLogging {
			log.Printf(format, v...)
		}
	}
	report := scenario.NewExecutor(opts.FailFast, logf).Run(script)
	replayStats.AddReport(report)
	if !report.Failed() {
		logf("%v: passed %v expectations", script.Name, report.Expectations)
		return nil
	}

	messages := make([]string, len(report.Failures))
	for i, failure := range report.Failures {
		messages[i] = failure.String()
	}
	log.Printf("%v: %v of %v expectations failed", script.Name, len(report.Failures), report.Expectations)
	return fmt.Errorf("%v: %v", script.Name, strings.Join(messages, "; "))
}
