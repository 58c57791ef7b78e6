// Package logic implements the pack and unpack orchestration around the fpk
// codec: walking the input tree, reading contents, and materializing output
// files.
package logic

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/fpk/internal/config"
	"github.com/idelchi/fpk/internal/fileutil"
	"github.com/idelchi/fpk/internal/filter"
	"github.com/idelchi/fpk/internal/keyfile"
	"github.com/idelchi/fpk/pkg/fpk"
)

const dirPerm = 0o755

// RunKeygen generates fresh key material and writes the key file.
func RunKeygen(cfg *config.Config) error {
	if err := keyfile.Write(cfg.KeyFile, fpk.GenerateKeys(), cfg.Force); err != nil {
		return fmt.Errorf("generating keys: %w", err)
	}

	if !cfg.Quiet {
		fmt.Printf("Wrote key file %q\n", cfg.KeyFile) //nolint:forbidigo
	}

	return nil
}

// RunPack archives the tree under cfg.Dir into cfg.Archive.
func RunPack(cfg *config.Config) error {
	start := time.Now()

	keys, err := keyfile.Read(cfg.KeyFile)
	if err != nil {
		return err
	}

	excludes, err := loadExcludes(cfg)
	if err != nil {
		return err
	}

	records, err := collectRecords(cfg.Dir, excludes, cfg.Parallel)
	if err != nil {
		return err
	}

	container, err := fpk.Pack(records, keys)
	if err != nil {
		return fmt.Errorf("packing %q: %w", cfg.Dir, err)
	}

	if err := fileutil.WriteAtomic(cfg.Archive, container, 0o600); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	if !cfg.Quiet {
		fmt.Printf("Packed %q -> %q\n", cfg.Dir, cfg.Archive) //nolint:forbidigo
	}

	if cfg.Stats {
		printStats(len(records), int64(len(container)), time.Since(start))
	}

	return nil
}

// RunUnpack restores the tree stored in cfg.Archive into cfg.Dir.
func RunUnpack(cfg *config.Config) error {
	start := time.Now()

	keys, err := keyfile.Read(cfg.KeyFile)
	if err != nil {
		return err
	}

	container, err := os.ReadFile(cfg.Archive) //nolint:gosec // path is user-supplied config
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}

	records, err := fpk.Unpack(container, keys)
	if err != nil {
		return fmt.Errorf("unpacking %q: %w", cfg.Archive, err)
	}

	// Verification has passed; only now touch the output tree.
	if err := os.MkdirAll(cfg.Dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var totalSize int64

	for _, rec := range records {
		outPath, err := safeJoin(cfg.Dir, rec.Path)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(outPath), dirPerm); err != nil {
			return fmt.Errorf("creating directory for %q: %w", rec.Path, err)
		}

		// Duplicate paths within one archive: the later record wins.
		if err := fileutil.WriteAtomic(outPath, rec.Data, 0o600); err != nil {
			return fmt.Errorf("materializing %q: %w", rec.Path, err)
		}

		totalSize += int64(len(rec.Data))

		if !cfg.Quiet {
			fmt.Printf("Extracted %q\n", rec.Path) //nolint:forbidigo
		}
	}

	if cfg.Stats {
		printStats(len(records), totalSize, time.Since(start))
	}

	return nil
}

// loadExcludes merges CLI and file-based exclude patterns into a matcher.
func loadExcludes(cfg *config.Config) (*filter.Matcher, error) {
	patterns := append([]string{}, cfg.Exclude...)

	if cfg.ExcludeFrom != "" {
		loaded, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return nil, fmt.Errorf("loading exclude patterns: %w", err)
		}

		patterns = append(patterns, loaded...)
	}

	matcher, err := filter.NewMatcher(patterns)
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return matcher, nil
}

// collectRecords walks dir and returns one record per regular file, in
// traversal order. Traversal order is whatever the filesystem yields; the
// archive format does not promise any particular ordering. Contents are read
// in parallel but slotted back into traversal positions, so record order
// still equals walk order.
func collectRecords(dir string, excludes *filter.Matcher, parallel int) ([]fpk.Record, error) {
	var relPaths []string

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("relativizing %q: %w", path, err)
		}

		rel = filepath.ToSlash(rel)

		if excludes.MatchAny(rel) {
			return nil
		}

		relPaths = append(relPaths, rel)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", dir, err)
	}

	records := make([]fpk.Record, len(relPaths))

	group := errgroup.Group{}
	group.SetLimit(parallel)

	for i, rel := range relPaths {
		group.Go(func() error {
			data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel))) //nolint:gosec // path comes from the walk
			if err != nil {
				return fmt.Errorf("reading %q: %w", rel, err)
			}

			records[i] = fpk.Record{Path: rel, Data: data}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// safeJoin joins a slash-separated archive path onto root, rejecting absolute
// paths and traversal outside root.
func safeJoin(root, rel string) (string, error) {
	if rel == "" || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("unsafe path %q in archive", rel)
	}

	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("unsafe path %q in archive", rel)
	}

	return filepath.Join(root, clean), nil
}

func printStats(files int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Files:    %d\n", files)
	//nolint:gosec // totalSize is always non-negative (sum of record sizes)
	fmt.Fprintf(os.Stderr, "  Size:     %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration: %s\n", duration.Round(time.Millisecond))
}
