package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/pages"
	"github.com/goliatone/go-formbuilder/pkg/prompt"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

var errInvalidSubmission = errors.New("submission is invalid")

func newPagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pages <form-id>",
		Short: "Print how the form splits into pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			groups := pages.Group(doc.Fields)

			if a.cfg.OutputFormat != config.OutputPretty {
				ids := make([][]string, 0, len(groups))
				for _, group := range groups {
					page := group.IDs()
					if page == nil {
						page = []string{}
					}
					ids = append(ids, page)
				}
				return writeValue(out, ids, a.cfg.OutputFormat)
			}

			for i, group := range groups {
				fmt.Fprintf(out, "Page %d of %d\n", i+1, len(groups))
				for _, f := range group {
					fmt.Fprintf(out, "  %s\t%s\t%s\n", f.ID, f.Subtype, f.Label)
				}
			}
			return nil
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <form-id>",
		Short: "Print the OpenAPI description of the form's submit endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), submission.Document(doc), a.cfg.OutputFormat)
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <form-id> <answers-file>",
		Short: "Check a JSON or YAML answers file against the form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			values, err := readAnswers(args[1])
			if err != nil {
				return err
			}

			result := submission.Validate(doc.Fields, values)
			if result.Valid() {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			a.logger.Debug("answers rejected", zap.String("form", doc.ID), zap.Error(result.Err()))
			if err := writeValue(cmd.OutOrStdout(), result, a.cfg.OutputFormat); err != nil {
				return err
			}
			return errInvalidSubmission
		},
	}
}

func newFillCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fill <form-id>",
		Short: "Fill in a form interactively and print the answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.ErrOrStderr())
			}
			runner := prompt.New(prompt.WithPromptDriver(driver), prompt.WithLogger(a.logger))
			values, err := runner.Run(cmd.Context(), doc)
			if err != nil {
				return err
			}

			format := prompt.OutputFormatJSON
			switch a.cfg.OutputFormat {
			case config.OutputPretty:
				format = prompt.OutputFormatPrettyText
			case config.OutputYAML:
				return writeValue(cmd.OutOrStdout(), values, config.OutputYAML)
			}
			payload, err := prompt.Format(doc.Fields, values, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}
}

func writeDocument(w io.Writer, doc formdoc.Document, format string) error {
	var (
		payload []byte
		err     error
	)
	switch format {
	case config.OutputYAML:
		payload, err = formdoc.EncodeYAML(doc)
	case config.OutputPretty:
		return writePretty(w, doc)
	default:
		payload, err = formdoc.Encode(doc)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

func writePretty(w io.Writer, doc formdoc.Document) error {
	fmt.Fprintf(w, "%s (%s)\n", doc.Title, doc.ID)
	for i, f := range doc.Fields {
		fmt.Fprintf(w, "%3d  %-28s %-16s %s", i, f.ID, f.Subtype, f.Label)
		if f.Required {
			fmt.Fprint(w, " *")
		}
		fmt.Fprintln(w)
		for _, opt := range f.Options {
			fmt.Fprintf(w, "       - %s  %s\n", opt.ID, opt.Value)
		}
	}
	return nil
}

// writeValue prints v as indented JSON, or as YAML when asked. Pretty output
// falls back to JSON for values without a text layout.
func writeValue(w io.Writer, v any, format string) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if format != config.OutputYAML {
		_, err = fmt.Fprintln(w, string(payload))
		return err
	}

	// Go through JSON first so types with custom JSON encoders keep their
	// shape.
	var generic any
	if err := json.Unmarshal(payload, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func readAnswers(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	values := make(map[string]any)
	if len(strings.TrimSpace(string(data))) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err == nil {
		return values, nil
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("answers must be a JSON or YAML object: %w", err)
	}
	return values, nil
}
