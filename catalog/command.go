package catalog

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/iand/ddx/diagnose"
	"github.com/iand/ddx/kb"
	"github.com/iand/ddx/logging"
	"github.com/iand/ddx/model"
	"github.com/iand/ddx/tabular"
	"github.com/iand/ddx/text"
)

var Command = &cli.Command{
	Name:  "list",
	Usage: "List the contents of a disease table.",
	Subcommands: []*cli.Command{
		{
			Name:   "diseases",
			Usage:  "List the diseases in table order.",
			Action: diseasesCmd,
			Flags: append(tableFlags(), &cli.BoolFlag{
				Name:        "details",
				Usage:       "Include the symptoms of each disease",
				Destination: &listOpts.details,
			}),
		},
		{
			Name:   "symptoms",
			Usage:  "List every symptom named by the table.",
			Action: symptomsCmd,
			Flags: append(tableFlags(), &cli.BoolFlag{
				Name:        "counts",
				Usage:       "Include the number of diseases listing each symptom",
				Destination: &listOpts.counts,
			}),
		},
	},
}

var listOpts struct {
	inputFile string
	delimiter string
	comment   string
	configDir string
	details   bool
	counts    bool
}

func tableFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i", "table"},
			Usage:       "Delimited table of diseases to read from",
			Value:       diagnose.DefaultInputFile,
			Destination: &listOpts.inputFile,
		},
		&cli.StringFlag{
			Name:        "delimiter",
			Usage:       "Field delimiter used by the table, e.g. ',' ';' or 'tab'. Detected from the file extension when empty.",
			Destination: &listOpts.delimiter,
		},
		&cli.StringFlag{
			Name:        "comment",
			Usage:       "Character that starts a comment line in the table",
			Destination: &listOpts.comment,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Value:       kb.DefaultConfigDir(),
			Usage:       "Path to the folder holding params.yaml and aliases.yaml.",
			Destination: &listOpts.configDir,
		},
	}, logging.Flags...)
}

func loadKnowledgeBase() (*model.KnowledgeBase, error) {
	logging.Setup()

	if listOpts.inputFile == "" {
		return nil, fmt.Errorf("no input table specified")
	}

	topts, err := diagnose.TableOptions(listOpts.delimiter, listOpts.comment)
	if err != nil {
		return nil, err
	}

	cfg, err := kb.LoadConfig(listOpts.configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	l, err := tabular.NewLoader(listOpts.inputFile, topts)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}

	return kb.LoadKnowledgeBase(cfg, l)
}

func diseasesCmd(cc *cli.Context) error {
	base, err := loadKnowledgeBase()
	if err != nil {
		return err
	}

	w := cc.App.Writer
	base.Each(func(d *model.Disease) {
		if !listOpts.details {
			fmt.Fprintln(w, d.Name)
			return
		}
		fmt.Fprintf(w, "%s: %s\n", d.Name, strings.Join(d.SymptomNames(), ", "))
	})
	fmt.Fprintf(cc.App.ErrWriter, "%s\n", text.CountOf(base.Len(), "disease"))
	return nil
}

func symptomsCmd(cc *cli.Context) error {
	base, err := loadKnowledgeBase()
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	base.Each(func(d *model.Disease) {
		for _, s := range d.SymptomNames() {
			counts[s]++
		}
	})

	w := cc.App.Writer
	symptoms := base.Symptoms()
	for _, s := range symptoms {
		if listOpts.counts {
			fmt.Fprintf(w, "%s\t%d\n", s, counts[s])
			continue
		}
		fmt.Fprintln(w, s)
	}
	fmt.Fprintf(cc.App.ErrWriter, "%s\n", text.CountOf(len(symptoms), "symptom"))
	return nil
}
