package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
	"pkt.systems/version"

	"github.com/muzzletov/tagparse"
)

const (
	defaultWidth   = 80
	defaultTimeout = 30 * time.Second
)

func init() {
	version.SetDefaultModule("github.com/muzzletov/tagparse")
}

type options struct {
	query        string
	childContent bool
	content      bool
	charset      string
	cookies      string
	userAgent    string
	timeout      time.Duration
	maxDepth     int
	escapableRaw bool
	keepVoidText bool
	width        int
	colorMode    string
	verbose      bool
	showVersion  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options

	flags := pflag.NewFlagSet("tagparse", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.query, "query", "q", "", "Selector query (tag, .class, #id, descendant and '>' combinators)")
	flags.BoolVarP(&opts.childContent, "child-content", "c", false, "Print the first child's content of every match")
	flags.BoolVar(&opts.content, "content", false, "Print the content of every match")
	flags.StringVar(&opts.charset, "charset", "", "Input encoding label, e.g. latin1 or shift_jis")
	flags.StringVar(&opts.cookies, "cookies", "", "Cookie jar file used for URL inputs")
	flags.StringVar(&opts.userAgent, "user-agent", "", "User-Agent header for URL inputs")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Timeout for URL inputs")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum element nesting depth (0 is unlimited)")
	flags.BoolVar(&opts.escapableRaw, "escapable-raw", false, "Read textarea and title bodies verbatim")
	flags.BoolVar(&opts.keepVoidText, "keep-void-text", false, "Keep text following void elements in the parent's content")
	flags.IntVarP(&opts.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVar(&opts.colorMode, "color", "auto", "Colored output: auto|on|off")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Trace parsing on stderr")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: tagparse [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nInputs are paths or http(s)/file URLs. If none is given, HTML is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	if err := configureColor(opts.colorMode, stdout); err != nil {
		fmt.Fprintf(stderr, "invalid --color %q: %v\n", opts.colorMode, err)
		return 2
	}

	logger := zap.NewNop()
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stderr, "logger: %v\n", err)
			return 1
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}

	parseOpts := []tagparse.Option{
		tagparse.WithLogger(logger),
		tagparse.WithMaxDepth(opts.maxDepth),
		tagparse.WithEscapableRawAsRaw(opts.escapableRaw),
		tagparse.WithVoidTextKept(opts.keepVoidText),
	}

	client := tagparse.NewClient()
	if opts.userAgent != "" {
		client.SetUserAgent(opts.userAgent)
	}
	client.SetTimeout(opts.timeout)
	if opts.cookies != "" {
		if err := client.LoadCookies(opts.cookies); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "load cookies: %v\n", err)
			return 1
		}
	}

	out := newPrinter(stdout, resolveWidth(opts.width, stdout))
	inputs := flags.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	status := 0
	for _, input := range inputs {
		p, err := parseInput(input, stdin, client, opts, parseOpts)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", displayName(input), err)
			status = 1
			continue
		}
		if !p.Success() {
			fmt.Fprintf(stderr, "%s: no element could be parsed\n", displayName(input))
			status = 1
			continue
		}
		if code := report(out, p, opts, stderr); code != 0 {
			return code
		}
	}

	if opts.cookies != "" {
		if err := client.PersistCookies(opts.cookies); err != nil {
			fmt.Fprintf(stderr, "save cookies: %v\n", err)
			return 1
		}
	}

	return status
}

func report(out *printer, p *tagparse.Parser, opts options, stderr io.Writer) int {
	if opts.query == "" {
		for _, root := range p.Roots() {
			out.tree(root)
		}
		return 0
	}

	q := p.Query(opts.query)
	matches := q.Get()
	if err := q.Err(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	for _, m := range matches {
		switch {
		case opts.childContent:
			out.text(m.ChildContent())
		case opts.content:
			out.text(m.InnerText())
		default:
			out.tree(m.Tag)
		}
	}

	return 0
}

func parseInput(input string, stdin io.Reader, client *tagparse.WebClient, opts options, parseOpts []tagparse.Option) (*tagparse.Parser, error) {
	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return parseData(data, opts.charset, parseOpts)
	}

	u, err := url.Parse(input)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
			defer cancel()
			data, err := client.Fetch(ctx, input)
			if err != nil {
				return nil, err
			}
			return parseData(data, opts.charset, parseOpts)
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			input = path
		}
	}

	f, err := os.Open(filepath.Clean(input))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if opts.charset != "" {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return parseData(data, opts.charset, parseOpts)
	}

	return tagparse.NewParser(f, parseOpts...)
}

func parseData(data []byte, charset string, parseOpts []tagparse.Option) (*tagparse.Parser, error) {
	decoded, err := tagparse.DecodeCharset(data, charset)
	if err != nil {
		return nil, err
	}
	return tagparse.NewParser(bytes.NewReader(decoded), parseOpts...)
}

func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return input
}

func configureColor(mode string, w io.Writer) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(w)
	case "on", "true", "1", "yes":
		color.NoColor = false
	case "off", "false", "0", "no":
		color.NoColor = true
	default:
		return fmt.Errorf("expected auto|on|off")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		var cols int
		if _, err := fmt.Sscanf(value, "%d", &cols); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultWidth
}
