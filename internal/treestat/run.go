package treestat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charlievieth/fastwalk"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// logger provides conditional debug output.
type logger struct {
	enabled bool
	w       io.Writer
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(l.w, format, args...)
	}
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Count returns the number of files beneath opt.Path that match opt.Extensions.
// Skipped paths are reported as described on Run.
func Count(ctx context.Context, opt Options) (*Result, error) {
	return Run(ctx, opt, ModeCount, nil)
}

// Size returns the total byte size of files beneath opt.Path that match
// opt.Extensions.
func Size(ctx context.Context, opt Options) (*Result, error) {
	return Run(ctx, opt, ModeSize, nil)
}

// Run walks the directory tree at opt.Path and accumulates either the number
// or the byte size of the files whose names end with one of opt.Extensions.
//
// The root itself must be a readable directory, otherwise Run fails. Below the
// root, entries that cannot be read for lack of permission or because they no
// longer exist are recorded in Result.Skipped, reported to opt.Diagnostics and
// contribute nothing. Any other failure aborts the walk.
//
// Nothing is printed by default: diagnostic lines for skipped paths are only
// written when opt.Diagnostics is set. Result.Skipped always lists them.
//
// The walk can be cancelled via ctx. Progress updates are sent to
// progressHook if provided.
//
//nolint:gocognit,funlen,cyclop // Single walk callback keeps the rules in one place.
func Run(ctx context.Context, opt Options, mode Mode, progressHook func(int64, int64)) (*Result, error) {
	log := logger{enabled: opt.Debug, w: os.Stderr}

	if opt.Path == "" {
		opt.Path = "."
	}

	opt.Path = filepath.Clean(opt.Path)

	// The root is not guarded: a missing or unreadable root fails the call.
	if statInfo, err := os.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q: %w", opt.Path, ErrNotDirectory)
	}

	excludeRegexes, err := compilePatterns(opt.Excludes)
	if err != nil {
		return nil, err
	}

	maxDepth := opt.Depth
	if !opt.Recursive {
		maxDepth = 1
	}

	log.printf("[debug]: mode: %s\n", mode)
	log.printf("[debug]: recursive: %t, symlinks: %t, max depth: %d\n", opt.Recursive, opt.Symlinks, maxDepth)
	log.printf("[debug]: suffixes:\n")

	for _, ext := range opt.Extensions {
		log.printf("[debug]:   - %s\n", ext)
	}

	log.printf("[debug]: exclude regexes:\n")

	for _, re := range excludeRegexes {
		log.printf("[debug]:   - %s\n", re.String())
	}

	collector := newCollector(mode)

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)

	skipOrFail := func(path string, err error) error {
		if failure := collector.skipOrFail(path, err, opt.Diagnostics); failure != nil {
			return failure
		}

		log.printf("[debug]: skipping %s: %v\n", path, err)

		return nil
	}

	start := time.Now()

	// One worker: entries are visited one at a time.
	conf := &fastwalk.Config{
		Follow:     opt.Symlinks,
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, opt.Path, func(path string, d fs.DirEntry, err error) error {
		depth := calculateDepth(path, opt.Path)

		if err != nil {
			var failure *walkError
			if errors.As(err, &failure) || ctx.Err() != nil {
				return err
			}

			if depth == 0 {
				return fmt.Errorf("reading %q: %w", path, err)
			}

			return skipOrFail(path, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if depth == 0 {
			return nil
		}

		if matchedPattern := shouldExcludeByPattern(path, excludeRegexes); matchedPattern != nil {
			log.printf("[debug]: excluding %s\n", filepath.ToSlash(path))
			log.printf("	 matched regex: %s\n", matchedPattern.String())

			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			if !shouldDescend(depth, maxDepth) {
				log.printf("[debug]: not descending into %s\n", path)

				return filepath.SkipDir
			}

			return nil
		}

		var info fs.FileInfo

		if d.Type()&fs.ModeSymlink != 0 {
			target, statErr := fastwalk.StatDirEntry(path, d)

			if !opt.Symlinks {
				// The link itself is the entry: a link to a directory contributes
				// nothing, any other link is matched and sized by lstat.
				if statErr == nil && target.IsDir() {
					log.printf("[debug]: ignoring directory symlink %s\n", path)

					return nil
				}
			} else {
				if statErr != nil {
					return skipOrFail(path, statErr)
				}

				if target.IsDir() {
					if !shouldDescend(depth, maxDepth) {
						log.printf("[debug]: not following %s\n", path)

						// fastwalk permits SkipDir on symlinks.
						return filepath.SkipDir
					}

					return nil
				}

				info = target
			}
		}

		if _, ok := matchSuffix(d.Name(), opt.Extensions); !ok {
			return nil
		}

		var size int64

		if mode == ModeSize {
			if info == nil {
				info, err = d.Info()
				if err != nil {
					return skipOrFail(path, err)
				}
			}

			size = info.Size()
		}

		collector.add(size)

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	result := collector.finalize()

	result.Elapsed = time.Since(start)

	return result, nil
}
