package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/heatcal/pkg/errors"
)

// watchDebounce groups the bursts of events editors produce for one save.
const watchDebounce = 150 * time.Millisecond

// watchRender renders once, then again whenever the config file or a file
// dataset changes, until ctx is cancelled. Render errors are reported and
// watching continues.
func (c *CLI) watchRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	render := func() {
		if err := c.runRender(ctx, opts); err != nil {
			printError("%s", errors.UserMessage(err))
		}
	}
	render()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "start file watcher")
	}
	defer w.Close()

	files, err := c.watchedFiles()
	if err != nil {
		return err
	}
	// Watch directories: editors often replace a file rather than write it.
	dirs := make(map[string]bool)
	for f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", d)
		}
	}
	printInfo("Watching %d file(s), press Ctrl+C to stop", len(files))

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			render()
			// The dataset list may have changed with the config.
			if updated, err := c.watchedFiles(); err == nil {
				for f := range updated {
					if !dirs[filepath.Dir(f)] {
						dirs[filepath.Dir(f)] = true
						_ = w.Add(filepath.Dir(f))
					}
				}
				files = updated
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

// watchedFiles returns the config file and every file dataset it names.
func (c *CLI) watchedFiles() (map[string]bool, error) {
	files := make(map[string]bool)
	if abs, err := filepath.Abs(c.configPath); err == nil {
		if _, err := os.Stat(abs); err == nil {
			files[abs] = true
		}
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	for _, p := range cfg.Paths() {
		if abs, err := filepath.Abs(p); err == nil {
			files[abs] = true
		}
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to watch: no config file and no file datasets")
	}
	return files, nil
}
