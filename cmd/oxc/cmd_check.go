package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucab/oxc/internal/logger"
	"github.com/lucab/oxc/internal/watcher"
	"github.com/lucab/oxc/pkg/api"
)

func newCheckCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Report syntax problems without printing the tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return watchPaths(args)
			}

			hadErrors, err := checkPaths(args)
			if err != nil {
				return err
			}
			if hadErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "re-check when watched files change")

	return cmd
}

func checkPaths(paths []string) (bool, error) {
	files, err := collectScriptFiles(paths)
	if err != nil {
		return false, err
	}

	// One log for the whole run so the error limit and the summary line
	// cover all files together
	log := stderrLog()
	for _, file := range files {
		if err := checkFile(log, file); err != nil {
			return false, err
		}
	}
	hadErrors := log.HasErrors()
	log.Done()
	return hadErrors, nil
}

func checkFile(log logger.Log, path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	result := api.Parse(string(contents), api.ParseOptions{
		Sourcefile: path,
		TS:         isTypeScriptPath(path),
	})
	addMessages(log, result)
	return nil
}

// collectScriptFiles expands directory arguments into the script files they
// contain. Files named directly are always included, whatever their
// extension.
func collectScriptFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isScriptPath(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func watchPaths(paths []string) error {
	w, err := watcher.New(100 * time.Millisecond)
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch directories rather than files so newly created files and
	// editors that replace files on save are both seen
	dirs, err := watchRoots(paths)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	if _, err := checkPaths(paths); err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			if !event.Op.Has(watcher.Create) && !event.Op.Has(watcher.Write) {
				continue
			}
			if !isScriptPath(event.Path) {
				continue
			}
			if _, err := checkPaths(paths); err != nil {
				return err
			}

		case err := <-w.Errors():
			return err
		}
	}
}

func watchRoots(paths []string) ([]string, error) {
	seen := map[string]bool{}
	var roots []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(path))
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return roots, nil
}
