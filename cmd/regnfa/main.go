package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"sigs.k8s.io/yaml"

	"github.com/KromDaniel/regnfa/pkg/regnfa"
)

const (
	appVersion = "1.0.0"
	appName    = "regnfa"
)

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (a arrayFlags) String() string {
	return strings.Join(a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type options struct {
	pattern    string
	hasPattern bool
	inputs     arrayFlags
	cases      string
	dot        string
	explain    bool
	analyze    bool
	generate   string
	name       string
	pkg        string
	noPool     bool
	dfa        bool
	verbose    bool
	version    bool
	help       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.pattern, "pattern", "", "Regular expression to compile (the empty pattern matches only \"\")")
	fs.Var(&opts.inputs, "input", "Input to match against the pattern (repeatable)")
	fs.StringVar(&opts.cases, "cases", "", "YAML file of test cases to run instead of -pattern")
	fs.StringVar(&opts.dot, "dot", "", "Write the automaton as Graphviz to this file (- for stdout)")
	fs.BoolVar(&opts.explain, "explain", false, "Print the expanded pattern, postfix form and state count")
	fs.BoolVar(&opts.analyze, "analyze", false, "Print feature and engine labels as YAML")
	fs.StringVar(&opts.generate, "generate", "", "Write a standalone Go matcher to this file")
	fs.StringVar(&opts.name, "name", "Matcher", "Type name for -generate")
	fs.StringVar(&opts.pkg, "package", "main", "Package name for -generate")
	fs.BoolVar(&opts.noPool, "no-pool", false, "Disable sync.Pool in generated table matchers")
	fs.BoolVar(&opts.dfa, "dfa", false, "Match through the lazy DFA cache")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log each compilation stage to stderr")
	fs.BoolVar(&opts.version, "version", false, "Print version information")
	fs.BoolVar(&opts.help, "help", false, "Show help message")
	return fs
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS]\n\n", appName)
	fmt.Fprintln(w, "Full-match byte strings against a Thompson NFA")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status is 1 if the pattern does not compile, any input fails to match, or any case fails.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  %s -pattern='(a|b)*abb' -input=aabb -input=ab\n", appName)
	fmt.Fprintf(w, "  %s -pattern='[0-9]{3}' -explain -dot=- | dot -Tsvg > nfa.svg\n", appName)
	fmt.Fprintf(w, "  %s -pattern='[a-z]+@[a-z]+' -generate=email.go -name=Email -package=email -input=me@home\n", appName)
	fmt.Fprintf(w, "  %s -cases=pkg/regnfa/testdata/cases.yaml -dfa\n", appName)
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "pattern" {
			opts.hasPattern = true
		}
	})

	if opts.help {
		printHelp(fs, stdout)
		return 0
	}
	if opts.version {
		fmt.Fprintf(stdout, "%s version %s\n", appName, appVersion)
		return 0
	}

	if opts.cases != "" {
		return runCases(opts, stdout, stderr)
	}

	if !opts.hasPattern {
		fmt.Fprintf(stderr, "Error: -pattern or -cases flag is required\n\n")
		printHelp(fs, stderr)
		return 1
	}
	return runPattern(opts, stdout, stderr)
}

func runPattern(opts options, stdout, stderr io.Writer) int {
	re, err := regnfa.CompileWithOptions(regnfa.Options{
		Pattern: opts.pattern,
		Verbose: opts.verbose,
		UseDFA:  opts.dfa,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.explain {
		fmt.Fprintf(stdout, "pattern:  %q\n", re.String())
		fmt.Fprintf(stdout, "expanded: %s\n", re.Expanded())
		fmt.Fprintf(stdout, "postfix:  %s\n", re.Postfix())
		fmt.Fprintf(stdout, "states:   %d\n", re.NumStates())
	}

	if opts.analyze {
		if err := writeAnalysis(opts.pattern, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.dot != "" {
		if err := writeDot(re, opts.dot, stdout); err != nil {
			fmt.Fprintf(stderr, "Error writing dot: %v\n", err)
			return 1
		}
	}

	if opts.generate != "" {
		err := regnfa.Generate(regnfa.GenerateOptions{
			Pattern:        opts.pattern,
			Name:           opts.name,
			OutputFile:     opts.generate,
			Package:        opts.pkg,
			NoPool:         opts.noPool,
			TestFileInputs: opts.inputs,
			Verbose:        opts.verbose,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Error generating code: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "wrote %s\n", opts.generate)
	}

	status := 0
	for _, in := range opts.inputs {
		if re.MatchString(in) {
			fmt.Fprintf(stdout, "match\t%q\n", in)
		} else {
			fmt.Fprintf(stdout, "no match\t%q\n", in)
			status = 1
		}
	}
	return status
}

func writeAnalysis(pattern string, stdout io.Writer) error {
	result, err := regnfa.Analyze(pattern)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func writeDot(re *regnfa.Regexp, path string, stdout io.Writer) error {
	if path == "-" {
		return re.WriteDot(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := re.WriteDot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runCases(opts options, stdout, stderr io.Writer) int {
	cases, err := regnfa.LoadCases(opts.cases)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	byPattern := map[string][]regnfa.CaseFailure{}
	checks := 0
	for _, c := range cases {
		checks += len(c.Match) + len(c.NoMatch)
		if c.Error != "" {
			checks++
		}
		for _, f := range c.Run(regnfa.Options{Verbose: opts.verbose, UseDFA: opts.dfa}) {
			byPattern[f.Pattern] = append(byPattern[f.Pattern], f)
		}
	}

	patterns := maps.Keys(byPattern)
	slices.Sort(patterns)
	failed := 0
	for _, p := range patterns {
		for _, f := range byPattern[p] {
			fmt.Fprintf(stdout, "FAIL %s\n", f)
			failed++
		}
	}
	fmt.Fprintf(stdout, "%d cases, %d checks, %d failed\n", len(cases), checks, failed)
	if failed > 0 {
		return 1
	}
	return 0
}
