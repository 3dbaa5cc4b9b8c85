package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gonuts/commander"

	"github.com/az-ai-labs/ewe-lang-nlp/dialect"
	"github.com/az-ai-labs/ewe-lang-nlp/morph"
	"github.com/az-ai-labs/ewe-lang-nlp/tokenizer"
)

func (a *app) detectCmd() *commander.Command {
	cmd, cfgPath := newCommand("detect", "[-all] [text]", "detect the dialect of text")
	all := cmd.Flag.Bool("all", false, "print every dialect with score and confidence")
	cmd.Run = func(_ *commander.Command, args []string) error {
		env, err := a.setup(*cfgPath)
		if err != nil {
			return err
		}
		text, err := a.text(args)
		if err != nil {
			return err
		}
		if *all {
			return a.writeJSON(env.engine.DetectAll(text))
		}
		_, err = fmt.Fprintln(a.stdout, env.engine.DetectDialect(text))
		return err
	}
	return cmd
}

type segmentReport struct {
	Segments []dialect.Segment `json:"segments"`
	Purity   float64           `json:"purity"`
}

func (a *app) segmentCmd() *commander.Command {
	cmd, cfgPath := newCommand("segment", "[text]", "split text into sentences tagged with their dialect")
	cmd.Run = func(_ *commander.Command, args []string) error {
		env, err := a.setup(*cfgPath)
		if err != nil {
			return err
		}
		text, err := a.text(args)
		if err != nil {
			return err
		}
		return a.writeJSON(segmentReport{
			Segments: env.engine.AnalyzeMixedText(text),
			Purity:   env.engine.DialectPurity(text),
		})
	}
	return cmd
}

func (a *app) convertCmd() *commander.Command {
	cmd, cfgPath := newCommand("convert", "-from <dialect> [-to <dialect>] [text]", "rewrite text from one dialect into another")
	from := cmd.Flag.String("from", "", "source dialect")
	to := cmd.Flag.String("to", "", "target dialect (default: configured default)")
	cmd.Run = func(_ *commander.Command, args []string) error {
		if *from == "" {
			return errors.New("convert: -from is required")
		}
		env, err := a.setup(*cfgPath)
		if err != nil {
			return err
		}
		text, err := a.text(args)
		if err != nil {
			return err
		}
		out, err := env.engine.Convert(text, *from, env.dialect(*to))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, out)
		return err
	}
	return cmd
}

func (a *app) mixCmd() *commander.Command {
	cmd, cfgPath := newCommand("mix", "-primary <dialect> -secondary <dialect> [-ratio r] [-seed n] [text]",
		"convert a random share of the words of text into a second dialect")
	primary := cmd.Flag.String("primary", "", "dialect of the input (default: configured default)")
	secondary := cmd.Flag.String("secondary", "", "dialect mixed in")
	ratio := cmd.Flag.Float64("ratio", -1, "share of eligible words converted (default: mix.ratio)")
	seed := cmd.Flag.Int64("seed", -1, "random seed (default: mix.seed)")
	cmd.Run = func(_ *commander.Command, args []string) error {
		if *secondary == "" {
			return errors.New("mix: -secondary is required")
		}
		env, err := a.setup(*cfgPath)
		if err != nil {
			return err
		}
		text, err := a.text(args)
		if err != nil {
			return err
		}
		r, s := env.cfg.Mix.Ratio, env.cfg.Mix.Seed
		if *ratio >= 0 {
			r = *ratio
		}
		if *seed >= 0 {
			s = uint64(*seed)
		}
		out, err := env.engine.CreateMixedDialect(text, env.dialect(*primary), *secondary, r, s)
		if err != nil {
			return err
		}
		env.log.Debug("mixed", "ratio", r, "seed", s)
		_, err = fmt.Fprintln(a.stdout, out)
		return err
	}
	return cmd
}

func (a *app) normalizeCmd() *commander.Command {
	cmd, cfgPath := newCommand("normalize", "[-to <dialect>] [-preserve] [text]", "rewrite text into a single target dialect")
	to := cmd.Flag.String("to", "", "target dialect (default: configured default)")
	preserve := cmd.Flag.Bool("preserve", false, "only convert sentences detected in another dialect")
	cmd.Run = func(_ *commander.Command, args []string) error {
		env, err := a.setup(*cfgPath)
		if err != nil {
			return err
		}
		text, err := a.text(args)
		if err != nil {
			return err
		}
		var out string
		if *preserve {
			out, err = env.engine.PreserveFeatures(text, env.dialect(*to))
		} else {
			out, err = env.engine.Normalize(text, env.dialect(*to))
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, out)
		return err
	}
	return cmd
}

func (a *app) sandhiCmd() *commander.Command {
	cmd, cfgPath := newCommand("sandhi", "[-dialect <dialect>] [-words] [text]", "apply tone sandhi")
	name := cmd.Flag.String("dialect", "", "dialect whose rules apply (default: configured default)")
	words := cmd.Flag.Bool("words", false, "resolve each word on its own and report how")
	cmd.Run = func(_ *commander.Command, args []string) error {
		env, err := a.setup(*cfgPath)
		if err != nil {
			return err
		}
		text, err := a.text(args)
		if err != nil {
			return err
		}
		d := env.dialect(*name)
		if !*words {
			out, err := env.engine.ApplySandhiPhrase(text, d)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, out)
			return err
		}
		for _, w := range tokenizer.Words(text) {
			res, err := env.engine.ResolveSandhi(w, d)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s\t%s\t%s", w, res.Surface, res.Outcome)
			if res.Rule != "" {
				line += "\t" + res.Rule
			}
			if _, err := fmt.Fprintln(a.stdout, line); err != nil {
				return err
			}
		}
		return nil
	}
	return cmd
}

type morphReport struct {
	Token    string         `json:"token"`
	Analysis morph.Analysis `json:"analysis"`
	Class    string         `json:"noun_class"`
	Plural   string         `json:"plural"`
}

func (a *app) morphCmd() *commander.Command {
	cmd, cfgPath := newCommand("morph", "[tokens]", "analyze the morphology of each token")
	cmd.Run = func(_ *commander.Command, args []string) error {
		env, err := a.setup(*cfgPath)
		if err != nil {
			return err
		}
		text, err := a.text(args)
		if err != nil {
			return err
		}
		m := env.engine.Morphology()
		var reports []morphReport
		for _, tok := range strings.Fields(text) {
			reports = append(reports, morphReport{
				Token:    tok,
				Analysis: env.engine.AnalyzeMorphology(tok),
				Class:    m.NounClass(tok).Name,
				Plural:   m.Plural(tok),
			})
		}
		return a.writeJSON(reports)
	}
	return cmd
}

type distanceReport struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	Dialect float64 `json:"dialect"`
	Tonal   float64 `json:"tonal_system"`
}

func (a *app) distanceCmd() *commander.Command {
	cmd, cfgPath := newCommand("distance", "[-weights phonology=1,lexicon=1,tonal=1] <dialect> <dialect>",
		"compare two dialects")
	weights := cmd.Flag.String("weights", "phonology=1,lexicon=1,tonal=1", "channel weights")
	cmd.Run = func(_ *commander.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("distance: need exactly two dialects")
		}
		w, err := parseWeights(*weights)
		if err != nil {
			return err
		}
		env, err := a.setup(*cfgPath)
		if err != nil {
			return err
		}
		d, err := env.engine.DialectDistance(args[0], args[1], w)
		if err != nil {
			return err
		}
		td, err := env.engine.TonalSystemDistance(args[0], args[1])
		if err != nil {
			return err
		}
		return a.writeJSON(distanceReport{A: args[0], B: args[1], Dialect: d, Tonal: td})
	}
	return cmd
}

// parseWeights reads "channel=weight" pairs separated by commas.
func parseWeights(s string) (dialect.Weights, error) {
	w := dialect.Weights{}
	for pair := range strings.SplitSeq(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("weights: %q is not channel=weight", pair)
		}
		ch := dialect.Channel(strings.TrimSpace(name))
		switch ch {
		case dialect.Phonology, dialect.Lexicon, dialect.Tonal:
		default:
			return nil, fmt.Errorf("weights: unknown channel %q", name)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("weights: %s: %w", name, err)
		}
		w[ch] = f
	}
	return w, nil
}
