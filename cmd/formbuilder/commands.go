package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

func newNewCmd(a *app) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "new <form-id>",
		Short: "Create an empty form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]
			if _, err := a.store.Load(ctx, id); err == nil {
				return fmt.Errorf("form %q already exists", id)
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if strings.TrimSpace(title) == "" {
				title = a.cfg.DefaultTitle
			}
			doc := formdoc.Document{ID: id, Title: field.CleanText(title), Fields: field.Sequence{}}
			if err := a.store.Save(ctx, doc); err != nil {
				return err
			}
			a.logger.Info("form created", zap.String("form", id))
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "form title")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := a.store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <form-id>",
		Short: "Print a form document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), doc, a.cfg.OutputFormat)
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Import every JSON/YAML form document found under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := formdoc.LoadFS(os.DirFS(args[0]))
			if err != nil {
				return err
			}
			for _, id := range catalog.IDs() {
				doc, _ := catalog.Get(id)
				if err := a.store.Save(cmd.Context(), doc); err != nil {
					return err
				}
				a.logger.Debug("form imported", zap.String("form", id), zap.String("source", catalog.Source(id)))
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var after string
	cmd := &cobra.Command{
		Use:   "add <form-id> <subtype>",
		Short: "Add a field with the subtype's defaults",
		Long: "Add a field after --after, or at the end of the form when --after is empty.\n" +
			"Page breaks are always appended. Subtypes: " + subtypeList(),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(s *session.Session) error {
				if err := selectAfter(s, after, a.cfg.Strict); err != nil {
					return err
				}
				id, err := s.Insert(field.Subtype(args[1]))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&after, "after", "", "insert after this field id")
	return cmd
}

func newDuplicateCmd(a *app) *cobra.Command {
	var after string
	cmd := &cobra.Command{
		Use:   "duplicate <form-id> <field-id>",
		Short: "Copy a field under a new id",
		Long:  "Copy a field and place the copy after --after, or after the source field when --after is empty.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(s *session.Session) error {
				target := after
				if target == "" {
					target = args[1]
				}
				if err := selectAfter(s, target, a.cfg.Strict); err != nil {
					return err
				}
				id, err := s.Duplicate(args[1])
				if err != nil {
					return err
				}
				if id != "" {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&after, "after", "", "place the copy after this field id")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <form-id> <field-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a field",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(s *session.Session) error {
				return s.Delete(args[1])
			})
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <form-id> <from> <to>",
		Short: "Move the field at index from to index to",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid from index %q", args[1])
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid to index %q", args[2])
			}
			return a.edit(cmd.Context(), args[0], func(s *session.Session) error {
				return s.Reorder(from, to)
			})
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var (
		label         string
		description   string
		showDesc      bool
		required      bool
		ratingCount   int
		addOptions    int
		setOptions    []string
		deleteOptions []string
	)
	cmd := &cobra.Command{
		Use:   "update <form-id> <field-id>",
		Short: "Change field attributes and options",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fieldID := args[1]
			flags := cmd.Flags()

			var patch editor.Patch
			if flags.Changed("label") {
				patch.Label = editor.Ptr(label)
			}
			if flags.Changed("description") {
				patch.Description = editor.Ptr(description)
			}
			if flags.Changed("show-description") {
				patch.ShowDescription = editor.Ptr(showDesc)
			}
			if flags.Changed("required") {
				patch.Required = editor.Ptr(required)
			}
			if flags.Changed("rating-count") {
				patch.RatingCount = editor.Ptr(ratingCount)
			}

			return a.edit(cmd.Context(), args[0], func(s *session.Session) error {
				if err := s.UpdateField(fieldID, patch); err != nil {
					return err
				}
				for i := 0; i < addOptions; i++ {
					if err := s.AddOption(fieldID); err != nil {
						return err
					}
				}
				for _, pair := range setOptions {
					optionID, value, ok := strings.Cut(pair, "=")
					if !ok {
						return fmt.Errorf("invalid --set-option %q, want <option-id>=<value>", pair)
					}
					if err := s.UpdateOption(fieldID, strings.TrimSpace(optionID), value); err != nil {
						return err
					}
				}
				for _, optionID := range deleteOptions {
					if err := s.DeleteOption(fieldID, optionID); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&label, "label", "", "field label")
	flags.StringVar(&description, "description", "", "field description")
	flags.BoolVar(&showDesc, "show-description", false, "show the description")
	flags.BoolVar(&required, "required", false, "mark the field required")
	flags.IntVar(&ratingCount, "rating-count", field.DefaultRatingCount, "rating scale (1-10)")
	flags.IntVar(&addOptions, "add-option", 0, "append this many default options")
	flags.StringArrayVar(&setOptions, "set-option", nil, "set an option value, as <option-id>=<value>")
	flags.StringArrayVar(&deleteOptions, "delete-option", nil, "delete an option by id")
	return cmd
}

// edit opens a session on the form, applies fn, and saves when it changed
// anything.
func (a *app) edit(ctx context.Context, formID string, fn func(*session.Session) error) error {
	s, err := session.Open(ctx, a.store, formID,
		session.WithEditor(a.editor()),
		session.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	if !s.Dirty() {
		return nil
	}
	return s.Save(ctx)
}

func selectAfter(s *session.Session, fieldID string, strict bool) error {
	if fieldID == "" {
		return nil
	}
	err := s.Select(fieldID)
	if err != nil && !strict && errors.Is(err, editor.ErrReferenceNotFound) {
		return nil
	}
	return err
}

func subtypeList() string {
	subtypes := field.Subtypes()
	names := make([]string, 0, len(subtypes))
	for _, st := range subtypes {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
