// Command alconnademo is a small interactive showcase of the Alconna
// parser: it registers a handful of example commands and runs a REPL that
// parses each line typed, printing the bound Arparma tree. It is a usage
// example, not a product CLI — real embedders call analyser.New directly.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/ArcletProject/Alconna/analyser"
	"github.com/ArcletProject/Alconna/args"
	"github.com/ArcletProject/Alconna/node"
	"github.com/ArcletProject/Alconna/pattern"
	"github.com/ArcletProject/Alconna/registry"
	"github.com/ArcletProject/Alconna/result"
)

var debug = flag.Bool("debug", false, "enable debug-level structured logging")

func main() {
	flag.Parse()

	logger := zap.NewNop().Sugar()
	if *debug {
		l, _ := zap.NewDevelopment()
		logger = l.Sugar()
	}

	reg := registry.New()
	an := buildPipDemo(reg, logger)

	if flag.NArg() > 0 {
		runOnce(an, strings.Join(flag.Args(), " "))
		return
	}
	repl(an)
}

// buildPipDemo builds a pip-flavored example command: a top-level `list`
// option and an `install <pkg> [--upgrade]` subcommand, registered against
// a shared registry so repeated identical input hits the LRU cache.
func buildPipDemo(reg *registry.Registry, logger *zap.SugaredLogger) *analyser.Analyser {
	install := node.NewSubcommand("install").
		WithArgs(args.MustNewArgs(args.New("pkg", pattern.Text()))).
		WithHelp("install a package")
	must(install.AddOption(node.NewOption("--upgrade").WithAliases("-u").
		WithAction(node.ActionStoreTrue).WithDefault(false).WithHelp("upgrade if already installed")))

	a := node.New("pip", node.NewHeader("pip"), node.Meta{FuzzyMatch: true, CachedInput: true})
	must(a.AddSubcommand(install))
	must(a.AddOption(node.NewOption("list").WithHelp("list installed packages")))

	must(reg.Register(a))

	an := analyser.New(a)
	an.Registry = reg
	an.Logger = logger
	an.KnownCommandIDs = []string{"pip"}
	return an
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "setup error:", err)
		os.Exit(1)
	}
}

func repl(an *analyser.Analyser) {
	prompt := promptui.Prompt{Label: "alconna"}
	for {
		line, err := prompt.Run()
		if err != nil { // ^C / ^D
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}
		runOnce(an, line)
	}
}

func runOnce(an *analyser.Analyser, line string) {
	arp := an.Parse(line)
	if arp.BuiltinKind != "" {
		fmt.Println(arp.BuiltinOutput)
		return
	}
	if !arp.Matched {
		color.Red("no match: %s", arp.ErrorInfo.Kind)
		return
	}
	printArparma(arp)
}

func printArparma(arp *result.Arparma) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"path", "value"})
	for k, v := range arp.OtherArgs {
		t.AppendRow(table.Row{k, v})
	}
	for name, or := range arp.Options {
		t.AppendRow(table.Row{"options." + name, or.Value})
	}
	color.Green("matched")
	fmt.Println(t.Render())
}
