package cmd

import (
	"flag"

	"github.com/etnz/stocks"
	"github.com/etnz/stocks/config"
	"github.com/etnz/stocks/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

type commandGroup struct {
	name     string
	commands []subcommands.Command
}

// commands lists the pcs subcommands by group, in display order.
func commands() []commandGroup {
	return []commandGroup{
		{"positions", []subcommands.Command{&addCmd{}, &removeCmd{}, &searchCmd{}}},
		{"reports", []subcommands.Command{&holdingCmd{}, &performanceCmd{}, &compareCmd{}, &historyCmd{}}},
		{"help", []subcommands.Command{&topicCmd{}}},
	}
}

// heldTickers predicts the tickers of the portfolio. It predicts nothing when the
// ledger cannot be read.
func heldTickers(string) []string {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil
	}
	defer closeStore()
	l, err := store.Load()
	if err != nil {
		return nil
	}
	return l.Tickers()
}

// flagPredictor returns how to complete the value of a flag, nil for boolean flags.
func flagPredictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return nil
	}
	switch f.Name {
	case "period":
		return predict.Set(stocks.LookbackNames())
	case "html":
		return predict.Files("*.html")
	case "config":
		return predict.Files("*.yaml")
	case "benchmark":
		return predict.Set{stocks.DefaultBenchmark, "QQQ", "DIA", "IWM"}
	default:
		return predict.Something
	}
}

func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) { m[f.Name] = flagPredictor(f) })
	return m
}

// Completion describes the pcs command line for shell completion.
//
// Calling Complete on it completes the command line in COMP_LINE and exits, or
// does nothing when COMP_LINE is not set.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(flag.CommandLine),
	}
	for _, group := range commands() {
		for _, c := range group.commands {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			sub := &complete.Command{Flags: flags(fs)}
			switch c.Name() {
			case "remove", "history":
				sub.Args = complete.PredictFunc(heldTickers)
			case "topic":
				sub.Args = predict.Set(append(docs.List(), "*"))
			}
			root.Sub[c.Name()] = sub
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}
