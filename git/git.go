package git

import (
	"errors"
	"fmt"
	"github.com/avast/retry-go"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem/dotgit"
	"linktree/options"
	"linktree/scenario"
	"linktree/util"
	"log"
	"os"
	"sort"
)

type repositoryProvider struct {
	repository *git.Repository
	filter     *util.PathFilter
	opts       *options.Options
}

// LoadRevision parses the scenario scripts committed at opts.Revision in the clone
// at opts.SourcePath, ordered by path.
func LoadRevision(opts *options.Options, filter *util.PathFilter) (scripts []*scenario.Script, err error) {

	provider := &repositoryProvider{
		filter: filter,
		opts:   opts,
	}

	provider.repository, err = git.PlainOpen(opts.SourcePath)
	if err != nil {
		return nil, &util.ErrorWithCode{
			StatusCode:    util.ERROR_BAD_SOURCE_GIT,
			InternalError: err,
		}
	}

	var commit *object.Commit
	commit, err = provider.getCommit(opts.Revision)
	if err != nil || commit == nil {
		return nil, err
	}

	log.Printf("loading scenarios of commit '%v' for revision '%v' at clone '%v'", commit.ID(), opts.Revision, opts.SourcePath)

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get tree of commit '%v': %v", commit.Hash, err)
	}
	count := 0
	err = tree.Files().ForEach(func(file *object.File) error {
		count++
		script, err := provider.loadFile(file)
		if err != nil || script == nil {
			return err
		}
		scripts = append(scripts, script)
		return nil
	})
	if err != nil {
		var withCode *util.ErrorWithCode
		if errors.As(err, &withCode) {
			return nil, err
		}
		if errors.Is(err, dotgit.ErrPackfileNotFound) {
			return nil, &util.ErrorWithCode{
				StatusCode:    util.ERROR_BAD_SOURCE_GIT,
				InternalError: err,
			}
		}
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, &util.ErrorWithCode{
				StatusCode:    util.ERROR_NO_REVISION,
				InternalError: err,
			}
		}
		return nil, fmt.Errorf("failed to iterate files of %v: %v", commit.Hash, err)
	}
	provider.verboseLog("iterated %v files for %v, %v scenarios", count, commit.Hash, len(scripts))
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Name < scripts[j].Name
	})
	return scripts, nil
}

func (provider *repositoryProvider) getCommit(commitish string) (*object.Commit, error) {

	_, err := provider.repository.Head()
	if err == plumbing.ErrReferenceNotFound {
		log.Printf("repository is detected as empty -- nothing to do")
		return nil, nil
	}

	hash, err := provider.repository.ResolveRevision(plumbing.Revision(commitish))
	if err != nil {
		return nil, &util.ErrorWithCode{
			StatusCode:    util.ERROR_NO_REVISION,
			InternalError: fmt.Errorf("failed to get revision '%v': %v", commitish, err),
		}
	}

	return provider.repository.CommitObject(*hash)
}

func (provider *repositoryProvider) verboseLog(format string, v ...interface{}) {
	if provider.opts.VerboseLogging {
		log.Printf(format, v...)
	}
}

func (provider *repositoryProvider) loadFile(file *object.File) (*scenario.Script, error) {
	filePath := file.Name

	mode := file.Mode

	if !mode.IsFile() || mode.IsMalformed() || provider.isSymlink(filePath, mode) {
		provider.verboseLog("--- skipping '%v' - not regular file - mode: %v", filePath, mode)
		return nil, nil
	}

	if !provider.filter.Match(filePath) {
		provider.verboseLog("--- skipping '%v' - not a selected scenario", filePath)
		return nil, nil
	}

	var contents string
	err := retry.Do(
		func() error {
			var contentsErr error
			contents, contentsErr = file.Contents()
			return contentsErr
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get git file contents for '%v': %v", filePath, err)
	}

	provider.verboseLog("+++ '%v' (%v)", filePath, file.Hash)
	return scenario.Parse(filePath, []byte(contents))
}

func (provider *repositoryProvider) isSymlink(filePath string, mode filemode.FileMode) bool {
	osMode, err := mode.ToOSFileMode()
	if err != nil {
		provider.verboseLog("failed to parse os file permissions for '%v': %v", filePath, err)
		return false
	}
	return osMode&os.ModeSymlink != 0
}
