package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/avitran/taxoform"
)

const periodLayout = "2006-01-02"

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("taxoform", flag.ContinueOnError)
	fs.SetOutput(stderr)
	taxonomyDir := fs.String("taxonomy", "", "path to the taxonomy artifact directory")
	industry := fs.String("industry", "", "industry the taxonomy covers")
	year := fs.Int("year", 0, "reporting year the taxonomy covers")
	schemaName := fs.String("schema", "schema.xsd", "schema artifact name within the taxonomy directory")
	labelsName := fs.String("labels", "labels.xml", "label linkbase artifact name (empty to skip)")
	definitionName := fs.String("definition", "definition.xml", "definition linkbase artifact name (empty to skip)")
	rulesName := fs.String("rules", "rules.xule", "rule artifact name (empty to skip)")
	structureName := fs.String("structure", "structure.yaml", "structure artifact name")
	entityID := fs.String("entity", "", "entity identifier for the instance document")
	period := fs.String("period", "", "reporting period date (YYYY-MM-DD)")
	outPath := fs.String("out", "", "write the instance document to a file instead of stdout")
	pretty := fs.Bool("pretty", false, "indent the instance document")
	includeEmpty := fs.Bool("include-empty", false, "emit empty facts for unanswered visible fields")
	debug := fs.Bool("debug", false, "log skipped rule and definition entries")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s --taxonomy <dir> --entity <id> --period <date> <answers.yaml>\n\n", os.Args[0]),
			writeln(stderr, "Generates an XBRL instance document from a taxonomy and an answer file."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	for _, required := range []struct {
		value string
		name  string
	}{
		{*taxonomyDir, "--taxonomy"},
		{*entityID, "--entity"},
		{*period, "--period"},
	} {
		if required.value == "" {
			if err := writef(stderr, "error: %s is required\n", required.name); err != nil {
				return 1
			}
			fs.Usage()
			if usageErr != nil {
				return 1
			}
			return 2
		}
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one answer file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	answersPath := remaining[0]

	periodDate, err := time.ParseInLocation(periodLayout, *period, time.UTC)
	if err != nil {
		if writeErr := writef(stderr, "error: --period must be %s: %v\n", periodLayout, err); writeErr != nil {
			return 1
		}
		return 2
	}

	opts := taxoform.NewLoadOptions()
	if *debug {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
		opts = opts.WithLogger(logger)
	}

	questionnaire, err := taxoform.LoadDirWithOptions(*taxonomyDir, taxoform.ArtifactSet{
		Industry:   *industry,
		Year:       *year,
		Schema:     *schemaName,
		Labels:     *labelsName,
		Definition: *definitionName,
		Rules:      *rulesName,
		Structure:  *structureName,
	}, opts)
	if err != nil {
		if writeErr := writef(stderr, "error loading taxonomy: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	answers, err := readAnswers(answersPath)
	if err != nil {
		if writeErr := writef(stderr, "error reading answers: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	submission := taxoform.NewSubmission(questionnaire, *entityID, periodDate)
	for id, raw := range answers {
		if err := submission.Set(id, raw); err != nil {
			if writeErr := writef(stderr, "error setting answer: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
	}

	if !submission.Complete() {
		if err := writef(stderr, "warning: submission is %.0f%% complete\n", submission.Progress()*100); err != nil {
			return 1
		}
	}

	document, err := submission.Generate(taxoform.NewGenerateOptions().
		WithPretty(*pretty).
		WithIncludeEmpty(*includeEmpty))
	if err != nil {
		if writeErr := writef(stderr, "error generating instance: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, document, 0o644); err != nil {
			if writeErr := writef(stderr, "error writing %s: %v\n", *outPath, err); writeErr != nil {
				return 1
			}
			return 1
		}
		return 0
	}
	if _, err := stdout.Write(document); err != nil {
		return 1
	}
	return 0
}

// readAnswers decodes the answer file: a mapping from field id to a scalar
// answer, or to a category-keyed mapping for dimensional fields.
func readAnswers(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var answers map[string]any
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return answers, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
