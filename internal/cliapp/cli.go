package cliapp

import (
	"flag"

	"github.com/da11an/repo-query-surface/internal/config"
)

const versionString = "1.0.0"

type cliOptions struct {
	configPath string
	format     string
	out        string
	lang       string
	top        int
	showAll    bool
	watch      bool
	ui         bool
	serve      bool
	history    bool
	trend      bool
	verbose    bool
	version    bool
	args       []string
}

func parseOptions(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("rqsmap", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to config file")
	fs.StringVar(&opts.format, "format", "", "Report format: markdown, tsv, dot, mermaid or json")
	fs.StringVar(&opts.out, "out", "", "Write the report to this file instead of stdout")
	fs.StringVar(&opts.lang, "lang", "", "Force a language profile instead of auto-detection")
	fs.IntVar(&opts.top, "top", 0, "Cap ranked report sections at this many rows")
	fs.BoolVar(&opts.showAll, "show-all", false, "Disable row truncation in ranked report sections")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run the analysis when source files change")
	fs.BoolVar(&opts.ui, "ui", false, "Interactive terminal dashboard (implies -watch)")
	fs.BoolVar(&opts.serve, "serve", false, "Expose the latest report over HTTP")
	fs.BoolVar(&opts.history, "history", false, "Record run summaries in the local history store")
	fs.BoolVar(&opts.trend, "trend", false, "Print recorded run history with deltas and exit")
	fs.BoolVar(&opts.verbose, "v", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}
