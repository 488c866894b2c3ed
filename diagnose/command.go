package diagnose

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/iand/ddx/infer"
	"github.com/iand/ddx/kb"
	"github.com/iand/ddx/logging"
	"github.com/iand/ddx/model"
	"github.com/iand/ddx/render"
	"github.com/iand/ddx/tabular"
	"github.com/iand/ddx/text"
)

const DefaultInputFile = "Diseases_Symptoms.csv"

const prompt = "Enter your symptoms you HAVE (comma separated):"

var Command = &cli.Command{
	Name:   "diagnose",
	Usage:  "Rank the most probable diseases for a set of symptoms.",
	Action: diagnoseCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i", "table"},
			Usage:       "Delimited table of diseases to read from",
			Value:       DefaultInputFile,
			Destination: &diagnoseOpts.inputFile,
		},
		&cli.StringFlag{
			Name:        "symptoms",
			Aliases:     []string{"s"},
			Usage:       "Comma separated symptoms that are present. Prompts on standard input when not given.",
			Destination: &diagnoseOpts.symptoms,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format, one of " + strings.Join(render.Formats, ", "),
			Value:       render.FormatText,
			Destination: &diagnoseOpts.format,
		},
		&cli.StringFlag{
			Name:        "delimiter",
			Usage:       "Field delimiter used by the table, e.g. ',' ';' or 'tab'. Detected from the file extension when empty.",
			Destination: &diagnoseOpts.delimiter,
		},
		&cli.StringFlag{
			Name:        "comment",
			Usage:       "Character that starts a comment line in the table",
			Destination: &diagnoseOpts.comment,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Value:       kb.DefaultConfigDir(),
			Usage:       "Path to the folder holding params.yaml and aliases.yaml.",
			Destination: &diagnoseOpts.configDir,
		},
		&cli.IntFlag{
			Name:        "top",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of diseases to show (overrides the config file)",
			Value:       model.DefaultParams().TopN,
			Destination: &diagnoseOpts.top,
		},
		&cli.Float64Flag{
			Name:        "prior",
			Usage:       "Prior weight given to every disease (overrides the config file)",
			Value:       model.DefaultParams().Prior,
			Destination: &diagnoseOpts.prior,
		},
		&cli.Float64Flag{
			Name:        "likelihood",
			Usage:       "Likelihood of a symptom that a disease lists (overrides the config file)",
			Value:       model.DefaultParams().Likelihood,
			Destination: &diagnoseOpts.likelihood,
		},
		&cli.Float64Flag{
			Name:        "unassociated",
			Usage:       "Likelihood of a reported symptom that a disease does not list (overrides the config file)",
			Value:       model.DefaultParams().UnassociatedLikelihood,
			Destination: &diagnoseOpts.unassociated,
		},
		&cli.IntFlag{
			Name:        "suggestions",
			Usage:       "Number of similar symptoms to suggest for each unrecognised symptom, 0 to disable",
			Value:       2,
			Destination: &diagnoseOpts.suggestions,
		},
		&cli.BoolFlag{
			Name:        "dump",
			Usage:       "Dump the scoring parameters and knowledge base to standard error before scoring",
			Value:       false,
			Destination: &diagnoseOpts.dump,
		},
	}, logging.Flags...),
}

var diagnoseOpts struct {
	inputFile    string
	symptoms     string
	format       string
	delimiter    string
	comment      string
	configDir    string
	top          int
	prior        float64
	likelihood   float64
	unassociated float64
	suggestions  int
	dump         bool
}

func diagnoseCmd(cc *cli.Context) error {
	logging.Setup()

	if diagnoseOpts.inputFile == "" {
		return fmt.Errorf("no input table specified")
	}

	enc, err := render.NewEncoder(diagnoseOpts.format)
	if err != nil {
		return err
	}

	topts, err := TableOptions(diagnoseOpts.delimiter, diagnoseOpts.comment)
	if err != nil {
		return err
	}

	cfg, err := kb.LoadConfig(diagnoseOpts.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cc, &cfg.Params)

	l, err := tabular.NewLoader(diagnoseOpts.inputFile, topts)
	if err != nil {
		return fmt.Errorf("load table: %w", err)
	}

	base, err := kb.LoadKnowledgeBase(cfg, l)
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}

	if diagnoseOpts.dump {
		fmt.Fprintln(cc.App.ErrWriter, logging.Sdump(cfg.Params))
		base.Each(func(d *model.Disease) {
			fmt.Fprintln(cc.App.ErrWriter, logging.Sdump(d))
		})
	}

	line := diagnoseOpts.symptoms
	if !cc.IsSet("symptoms") {
		line, err = readSymptoms(cc.App.Reader, cc.App.Writer)
		if err != nil {
			return fmt.Errorf("read symptoms: %w", err)
		}
	}

	reported := cfg.Aliases.ResolveAll(text.SplitList(line))
	if len(reported) == 0 {
		fmt.Fprintln(cc.App.Writer, "No symptoms entered. Exiting.")
		return nil
	}

	diagnoses := infer.Rank(reported, base, cfg.Params)
	for _, dg := range diagnoses {
		logging.Debug("scored disease", "disease", dg.Name, "probability", dg.Probability)
	}

	report := render.NewReport(reported, base, diagnoses)
	if diagnoseOpts.suggestions > 0 {
		report.AddSuggestions(base, diagnoseOpts.suggestions)
	}
	for _, s := range report.Ignored {
		logging.Info("ignoring unrecognised symptom", "symptom", s, "suggestions", strings.Join(report.Suggestions[s], ", "))
	}

	return enc.Encode(cc.App.Writer, report)
}

// applyOverrides replaces configured parameters with any given on the command line.
func applyOverrides(cc *cli.Context, p *model.Params) {
	if cc.IsSet("top") {
		p.TopN = diagnoseOpts.top
	}
	if cc.IsSet("prior") {
		p.Prior = diagnoseOpts.prior
	}
	if cc.IsSet("likelihood") {
		p.Likelihood = diagnoseOpts.likelihood
	}
	if cc.IsSet("unassociated") {
		p.UnassociatedLikelihood = diagnoseOpts.unassociated
	}
}

// readSymptoms prompts for and reads a single line of symptoms.
func readSymptoms(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprintln(w, prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// TableOptions converts the delimiter and comment flag values into loader options.
func TableOptions(delimiter string, comment string) (tabular.Options, error) {
	var opts tabular.Options
	var err error
	opts.Delimiter, err = parseRune(delimiter)
	if err != nil {
		return opts, fmt.Errorf("delimiter: %w", err)
	}
	opts.Comment, err = parseRune(comment)
	if err != nil {
		return opts, fmt.Errorf("comment: %w", err)
	}
	return opts, nil
}

func parseRune(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}
	return r[0], nil
}
