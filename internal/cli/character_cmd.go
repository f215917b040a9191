package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spica/internal/cli/formatter"
)

func newCharacterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "character",
		Short: "Manage characters",
	}

	cmd.AddCommand(
		newCharacterAddCmd(app),
		newCharacterListCmd(app),
		newCharacterInspectCmd(app),
		newCharacterSetCmd(app),
		newCharacterCheckCmd(app, true),
		newCharacterCheckCmd(app, false),
		newCharacterRemoveCmd(app),
	)

	return cmd
}

// parseFieldFlags turns repeated "key=value" flags into ordered pairs.
func parseFieldFlags(raw []string) ([][2]string, error) {
	fields := make([][2]string, 0, len(raw))
	for _, f := range raw {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", f)
		}
		fields = append(fields, [2]string{k, v})
	}
	return fields, nil
}

func newCharacterAddCmd(app *App) *cobra.Command {
	var rawFields []string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFieldFlags(rawFields)
			if err != nil {
				return err
			}
			id := app.Store.CreateCharacter(args[0], fields)
			if err := app.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created character %s\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&rawFields, "field", nil, "Character field as key=value (repeatable)")

	return cmd
}

func newCharacterListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCharacterList(app.Store.Characters()))
			return nil
		},
	}
}

func newCharacterInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <character>",
		Short: "Show a character's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveCharacterID(args[0])
			if err != nil {
				return err
			}
			c, err := app.Store.Character(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCharacterInspect(c))
			return nil
		},
	}
}

func newCharacterSetCmd(app *App) *cobra.Command {
	var name string
	var rawFields []string

	cmd := &cobra.Command{
		Use:   "set <character>",
		Short: "Update a character's name or fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveCharacterID(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				if err := app.Store.SetCharacterName(id, name); err != nil {
					return err
				}
			}
			fields, err := parseFieldFlags(rawFields)
			if err != nil {
				return err
			}
			for _, kv := range fields {
				if err := app.Store.SetCharacterField(id, kv[0], kv[1]); err != nil {
					return err
				}
			}
			return app.Save()
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Character name")
	cmd.Flags().StringArrayVar(&rawFields, "field", nil, "Character field as key=value (repeatable)")

	return cmd
}

func newCharacterCheckCmd(app *App, checked bool) *cobra.Command {
	use, short := "check <character>", "Include the character in generation context"
	if !checked {
		use, short = "uncheck <character>", "Exclude the character from generation context"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveCharacterID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.SetCharacterChecked(id, checked); err != nil {
				return err
			}
			return app.Save()
		},
	}
}

func newCharacterRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <character>",
		Short: "Delete a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveCharacterID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteCharacter(id); err != nil {
				return err
			}
			return app.Save()
		},
	}
}
