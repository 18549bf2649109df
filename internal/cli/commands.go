package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/tui"
	"github.com/idilsaglam/shoplist/internal/ui"
)

const lsHint = "Hint: run `shoplist ls` to see valid positions"

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("", "usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("", "usage: %s", usage)
		}
		return nil
	}
}

func parsePosition(verb, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usagef("", "%s: not a number: %s", verb, arg)
	}
	return n, nil
}

// itemAt maps a 1-based position from `shoplist ls` to the cached item.
func itemAt(items []model.ShoppingItem, pos int) (model.ShoppingItem, error) {
	if pos < 1 || pos > len(items) {
		return model.ShoppingItem{}, usagef(lsHint, "index out of range: have %d, got %d", len(items), pos)
	}
	return items[pos-1], nil
}

func runUI(cmd *cobra.Command, f *rootFlags) error {
	a, err := openApp(cmd.Context(), f, cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	defer a.Close()
	return tui.Run(a.ctl, tea.WithContext(cmd.Context()))
}

func newUICmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list (default)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, f)
		},
	}
}

func newListCmd(f *rootFlags) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print the list",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), f, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(cmd.OutOrStdout(), renderList(a.ctl.Items(), group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/bought")
	return cmd
}

func newAddCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add an item (name can be multiple words)",
		Args:  minArgs(1, "shoplist add <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if model.IsBlank(name) {
				return usagef("", "add: empty name")
			}
			a, err := openApp(cmd.Context(), f, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ctl.Add(name).Wait(cmd.Context()); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "added "+strings.TrimSpace(name))
			return nil
		},
	}
}

func newToggleCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <position>",
		Aliases: []string{"done"},
		Short:   "Mark the item at position bought or not bought",
		Args:    exactArgs(1, "shoplist toggle <position>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition("toggle", args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), f, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			it, err := itemAt(a.ctl.Items(), pos)
			if err != nil {
				return err
			}
			if err := a.ctl.ToggleBought(it.ID).Wait(cmd.Context()); err != nil {
				return err
			}
			verb := "bought"
			if it.IsBought {
				verb = "not bought"
			}
			ui.OK(cmd.OutOrStdout(), verb+": "+it.Name)
			return nil
		},
	}
}

func newEditCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <position> <name...>",
		Short: "Rename the item at position",
		Args:  minArgs(2, "shoplist edit <position> <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition("edit", args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			if model.IsBlank(name) {
				return usagef("", "edit: empty name")
			}
			a, err := openApp(cmd.Context(), f, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			it, err := itemAt(a.ctl.Items(), pos)
			if err != nil {
				return err
			}
			if err := a.ctl.Edit(it, name).Wait(cmd.Context()); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "renamed "+it.Name+" to "+strings.TrimSpace(name))
			return nil
		},
	}
}

func newRemoveCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <position>",
		Aliases: []string{"delete"},
		Short:   "Delete the item at position",
		Args:    exactArgs(1, "shoplist rm <position>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition("rm", args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), f, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			it, err := itemAt(a.ctl.Items(), pos)
			if err != nil {
				return err
			}
			if err := a.ctl.Delete(it).Wait(cmd.Context()); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed "+it.Name)
			return nil
		},
	}
}
