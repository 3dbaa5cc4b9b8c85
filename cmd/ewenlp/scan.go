package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gonuts/commander"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/az-ai-labs/ewe-lang-nlp/engine"
	"github.com/az-ai-labs/ewe-lang-nlp/normalize"
)

const (
	chunkSize = 1 << 20 // one read; chunks are cut at the last newline

	// Files whose purity falls below this share of the corpus median are
	// reported as mixed.
	mixedPurityFactor = 0.5
)

type filePurity struct {
	path    string
	dialect string
	purity  float64
}

// scanStats aggregates results across files.
type scanStats struct {
	mu             sync.Mutex
	filesScanned   int
	filesFailed    int
	totalBytes     int64
	segments       int
	runesByDialect map[string]int
	filesByDialect map[string]int
	purities       []filePurity
	mixed          []string
}

// fileState accumulates results for one file.
type fileState struct {
	path           string
	dialects       []string // declaration order; breaks purity ties
	totalBytes     int64
	segments       int
	runesByDialect map[string]int
}

func (a *app) scanCmd() *commander.Command {
	cmd, cfgPath := newCommand("scan", "[-workers n] [-pattern glob] <dir>",
		"report the dialect makeup of a corpus directory")
	workers := cmd.Flag.Int("workers", -1, "concurrent files (default: scan.workers)")
	pattern := cmd.Flag.String("pattern", "", "file name glob (default: scan.pattern)")
	cmd.Run = func(_ *commander.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("scan: need one directory, got %d arguments", len(args))
		}
		env, err := a.setup(*cfgPath)
		if err != nil {
			return err
		}
		n := env.cfg.ScanWorkers()
		if *workers > 0 {
			n = *workers
		}
		glob := env.cfg.Scan.Pattern
		if *pattern != "" {
			glob = *pattern
		}

		log := env.log.With(slog.String("run_id", uuid.NewString()))
		stats, err := scan(a.ctx, env.engine, log, args[0], glob, n)
		if err != nil {
			return err
		}
		stats.mixed = flagMixedFiles(stats, log)
		return printScanStats(a.stdout, stats)
	}
	return cmd
}

func scan(ctx context.Context, e *engine.Engine, log *slog.Logger, dir, glob string, workers int) (*scanStats, error) {
	if _, err := filepath.Match(glob, ""); err != nil {
		return nil, fmt.Errorf("scan: pattern %q: %w", glob, err)
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(glob, d.Name()); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan: walk %s: %w", dir, err)
	}

	log.Info("scan started", slog.String("dir", dir), slog.Int("files", len(paths)), slog.Int("workers", workers))
	start := time.Now()

	stats := &scanStats{
		runesByDialect: make(map[string]int),
		filesByDialect: make(map[string]int),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range paths {
		g.Go(func() error {
			fs, err := processFile(ctx, e, p)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn("file skipped", slog.String("path", p), slog.Any("error", err))
				stats.fail()
				return nil
			}
			log.Debug("file scanned", slog.String("path", p), slog.Int64("bytes", fs.totalBytes), slog.Int("segments", fs.segments))
			mergeFileState(fs, stats)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(stats.purities, func(i, j int) bool { return stats.purities[i].path < stats.purities[j].path })
	log.Info("scan finished", slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
		slog.Int("scanned", stats.filesScanned), slog.Int("failed", stats.filesFailed))
	return stats, nil
}

func processFile(ctx context.Context, e *engine.Engine, path string) (*fileState, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	state := &fileState{
		path:           path,
		dialects:       e.Dialects(),
		runesByDialect: make(map[string]int),
	}

	buf := make([]byte, chunkSize)
	var leftover []byte

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := f.Read(buf)
		if n > 0 {
			leftover = append(leftover, buf[:n]...)
			chunk := leftover

			if err == nil {
				idx := bytes.LastIndexByte(chunk, '\n')
				if idx < 0 && len(chunk) < chunkSize {
					continue
				}
				if idx >= 0 {
					leftover = bytes.Clone(chunk[idx+1:])
					chunk = chunk[:idx+1]
				} else {
					leftover = nil
				}
			} else {
				leftover = nil
			}

			state.processChunk(e, chunk)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if len(leftover) > 0 {
		state.processChunk(e, leftover)
	}
	return state, nil
}

func (fs *fileState) processChunk(e *engine.Engine, chunk []byte) {
	fs.totalBytes += int64(len(chunk))
	if !utf8.Valid(chunk) {
		chunk = bytes.ToValidUTF8(chunk, []byte("�"))
	}
	for _, seg := range e.AnalyzeMixedText(string(chunk)) {
		fs.segments++
		fs.runesByDialect[seg.Dialect] += utf8.RuneCountInString(normalize.Text(seg.Text))
	}
}

// purity returns the main dialect of the file and its share of the runes.
// On a tie the dialect declared first wins.
func (fs *fileState) purity() (string, float64) {
	total, best, top := 0, 0, ""
	for _, d := range fs.dialects {
		n := fs.runesByDialect[d]
		total += n
		if n > best {
			best, top = n, d
		}
	}
	if total == 0 {
		return "", 1
	}
	return top, float64(best) / float64(total)
}

func (s *scanStats) fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filesFailed++
}

func mergeFileState(fs *fileState, stats *scanStats) {
	top, purity := fs.purity()

	stats.mu.Lock()
	defer stats.mu.Unlock()

	stats.filesScanned++
	stats.totalBytes += fs.totalBytes
	stats.segments += fs.segments
	for d, n := range fs.runesByDialect {
		stats.runesByDialect[d] += n
	}
	if top != "" {
		stats.filesByDialect[top]++
	}
	stats.purities = append(stats.purities, filePurity{path: fs.path, dialect: top, purity: purity})
}

// flagMixedFiles logs files whose purity is far below the corpus median.
func flagMixedFiles(stats *scanStats, log *slog.Logger) []string {
	if len(stats.purities) == 0 {
		return nil
	}

	values := make([]float64, len(stats.purities))
	for i, fp := range stats.purities {
		values[i] = fp.purity
	}
	med := computeMedian(values)

	var mixed []string
	for _, fp := range stats.purities {
		if fp.purity < mixedPurityFactor*med {
			mixed = append(mixed, fp.path)
			log.Warn("mixed dialect file", slog.String("path", fp.path), slog.String("dialect", fp.dialect),
				slog.Float64("purity", fp.purity), slog.Float64("median", med))
		}
	}
	return mixed
}

func computeMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func printScanStats(w io.Writer, stats *scanStats) error {
	totalRunes := 0
	for _, n := range stats.runesByDialect {
		totalRunes += n
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "Files scanned:    %d\n", stats.filesScanned)
	fmt.Fprintf(&b, "Files failed:     %d\n", stats.filesFailed)
	fmt.Fprintf(&b, "Total bytes:      %d\n", stats.totalBytes)
	fmt.Fprintf(&b, "Segments:         %d\n", stats.segments)
	b.WriteString("\nDialect distribution (runes):\n")
	for _, d := range slices.Sorted(maps.Keys(stats.runesByDialect)) {
		n := stats.runesByDialect[d]
		pct := 0.0
		if totalRunes > 0 {
			pct = float64(n) / float64(totalRunes) * 100
		}
		fmt.Fprintf(&b, "  %-15s %d  (%.1f%%)  files: %d\n", d+":", n, pct, stats.filesByDialect[d])
	}
	if len(stats.mixed) > 0 {
		b.WriteString("\nMixed files:\n")
		for _, p := range stats.mixed {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}
	_, err := w.Write(b.Bytes())
	return err
}
