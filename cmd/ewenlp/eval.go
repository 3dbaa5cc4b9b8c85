package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/az-ai-labs/ewe-lang-nlp/metrics"
	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

type toneReport struct {
	Positions int                `json:"positions"`
	Accuracy  float64            `json:"accuracy"`
	F1        map[string]float64 `json:"f1"`
	Confusion metrics.Confusion  `json:"confusion"`
}

// morphPair is one line of a morphology evaluation file.
type morphPair struct {
	Gold map[string]string `json:"gold"`
	Pred map[string]string `json:"pred"`
}

func (a *app) evalCmd() *commander.Command {
	cmd := &commander.Command{
		UsageLine: "eval [-morph] <file>",
		Short:     "score predictions against gold annotations",
		Flag:      *flag.NewFlagSet("eval", flag.ContinueOnError),
	}
	morph := cmd.Flag.Bool("morph", false, "file holds JSON lines of {\"gold\": {...}, \"pred\": {...}} feature maps")
	cmd.Long = `
Tone files hold one "gold<TAB>pred" pair of tone sequences per line, e.g.

	H L M	H M M

Morphology files (-morph) hold one JSON object per line with "gold" and
"pred" maps over noun_class, tense, aspect and derivation.
`
	cmd.Run = func(_ *commander.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("eval: need one file, got %d arguments", len(args))
		}
		if *morph {
			rep, err := evalMorph(args[0])
			if err != nil {
				return err
			}
			return a.writeJSON(rep)
		}
		rep, err := evalTones(args[0])
		if err != nil {
			return err
		}
		return a.writeJSON(rep)
	}
	return cmd
}

// readLines calls fn for every non-blank line of path with its 1-based number.
func readLines(path string, fn func(n int, line string) error) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64<<10), maxStdinBytes)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(n, line); err != nil {
			return fmt.Errorf("%s:%d: %w", path, n, err)
		}
	}
	return sc.Err()
}

func evalTones(path string) (*toneReport, error) {
	var pred, gold tone.Sequence
	err := readLines(path, func(_ int, line string) error {
		g, p, ok := strings.Cut(line, "\t")
		if !ok {
			return errors.New("want gold<TAB>pred")
		}
		gs, err := tone.Parse(g, false)
		if err != nil {
			return err
		}
		ps, err := tone.Parse(p, false)
		if err != nil {
			return err
		}
		if len(gs) != len(ps) {
			return fmt.Errorf("%d gold tones vs %d predicted", len(gs), len(ps))
		}
		gold = append(gold, gs...)
		pred = append(pred, ps...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	acc, err := metrics.ToneAccuracy(pred, gold)
	if err != nil {
		return nil, err
	}
	conf, err := metrics.ToneConfusion(pred, gold)
	if err != nil {
		return nil, err
	}
	rep := &toneReport{Positions: len(gold), Accuracy: acc, Confusion: conf, F1: map[string]float64{}}
	for _, t := range []tone.Tone{tone.Low, tone.Mid, tone.High} {
		f1, err := metrics.ToneF1(pred, gold, t)
		if err != nil {
			return nil, err
		}
		rep.F1[string(t)] = f1
	}
	return rep, nil
}

func evalMorph(path string) (map[string]metrics.Score, error) {
	var pred, gold []map[string]string
	err := readLines(path, func(_ int, line string) error {
		var p morphPair
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return err
		}
		gold = append(gold, p.Gold)
		pred = append(pred, p.Pred)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return metrics.MorphF1(pred, gold)
}
