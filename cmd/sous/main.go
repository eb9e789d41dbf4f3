package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/sous/internal/app"
	"github.com/five82/sous/internal/search"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var verr *search.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, verr.Message)
			return 2
		}
		fmt.Fprintf(os.Stderr, "sous: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "sous",
		Short:         "Find recipes for the ingredients you have",
		Long:          "sous searches Spoonacular for recipes that use the ingredients you list.\nRun without a subcommand to open the interactive search.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/sous/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/sous/prefs.toml)")
	flags.BoolVar(&opts.Rich, "rich", false, "render recipe text as styled markdown")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newFindCmd(&opts),
		newRecipeCmd(&opts),
		newIngredientsCmd(&opts),
	)
	return root
}

// withEnv boots the application for a one-shot subcommand.
func withEnv(cmd *cobra.Command, opts *app.Options, fn func(*app.Env) error) error {
	env, err := app.Bootstrap(*opts)
	if err != nil {
		return err
	}
	defer env.Close()
	if env.Warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "sous: %s\n", env.Warning)
	}
	return fn(env)
}

func newFindCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "find <ingredient>...",
		Short:   "List recipes that use the given ingredients",
		Example: "  sous find egg rice spinach\n  sous find \"olive oil, garlic\"",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(env *app.Env) error {
				return env.Find(cmd.Context(), cmd.OutOrStdout(), app.QueryFromArgs(args))
			})
		},
	}
}

func newRecipeCmd(opts *app.Options) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "recipe <id>",
		Short: "Show a recipe's details and instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid recipe id %q", args[0])
			}
			return withEnv(cmd, opts, func(env *app.Env) error {
				return env.ShowRecipe(cmd.Context(), cmd.OutOrStdout(), id, width)
			})
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 80, "wrap width for rich text")
	return cmd
}

func newIngredientsCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "ingredients <term>",
		Short: "Suggest ingredient names matching a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(env *app.Env) error {
				return env.Ingredients(cmd.Context(), cmd.OutOrStdout(), args[0])
			})
		},
	}
}
