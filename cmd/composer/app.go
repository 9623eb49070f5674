package main

import (
	"context"
	"fmt"
	"io"

	cli "github.com/urfave/cli/v3"

	"github.com/goliatone/go-composer"
	"github.com/goliatone/go-composer/internal/di"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/sections"
)

// app carries the module shared by every subcommand of one invocation.
type app struct {
	out    io.Writer
	opts   []di.Option
	module *composer.Module
}

func newApp(out io.Writer, opts ...di.Option) *cli.Command {
	a := &app{out: out, opts: opts}
	return &cli.Command{
		Name:            "composer",
		Usage:           "edit, import and preview composed pages",
		HideHelpCommand: true,
		Writer:          out,
		Before:          a.before,
		After:           a.after,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:   "token",
				Usage:  "Issues a bearer token",
				Action: a.token,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Aliases: []string{"s"}, Value: "operator", Usage: "token `SUBJECT`"},
					&cli.StringSliceFlag{Name: "cap", Value: []string{permissions.PagesRead, permissions.PagesUpdate}, Usage: "granted `CAPABILITY` (repeatable)"},
					&cli.DurationFlag{Name: "ttl", Usage: "token lifetime (defaults to auth.token_ttl)"},
				},
			},
			{
				Name:      "show",
				Usage:     "Prints a stored page document as JSON",
				ArgsUsage: "PAGE_KEY",
				Action:    a.show,
			},
			{
				Name:      "edit",
				Usage:     "Runs a YAML edit script against a page",
				ArgsUsage: "SCRIPT",
				Action:    a.edit,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "page", Aliases: []string{"p"}, Usage: "page `KEY` (overrides the script's page)"},
					&cli.BoolFlag{Name: "remote", Usage: "save through the pages API at editor.base_url"},
					&cli.StringFlag{Name: "token", Sources: cli.EnvVars("COMPOSER_TOKEN"), Usage: "bearer `TOKEN` (issued locally when empty)"},
					&cli.StringFlag{Name: "as", Value: "cli", Usage: "subject for locally issued tokens"},
				},
			},
			{
				Name:      "preview",
				Usage:     "Renders a page to HTML",
				ArgsUsage: "PAGE_KEY",
				Action:    a.preview,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write HTML to `FILE` instead of stdout"},
					&cli.BoolFlag{Name: "editing", Usage: "include hidden sections and edit markers"},
				},
			},
			{
				Name:      "import",
				Usage:     "Imports a Markdown file or directory as pages",
				ArgsUsage: "PATH",
				Action:    a.importMarkdown,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Usage: "page `KEY` for a single file"},
					&cli.StringFlag{Name: "actor", Value: "cli", Usage: "recorded editor"},
					&cli.BoolFlag{Name: "dry-run", Usage: "parse without saving"},
				},
			},
			{
				Name:   "variants",
				Usage:  "Lists section variants",
				Action: a.variants,
			},
		},
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}
	cfg, err := composer.LoadConfig(cmd.String("config"))
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	module, err := composer.New(ctx, cfg, a.opts...)
	if err != nil {
		return ctx, fmt.Errorf("bootstrap module: %w", err)
	}
	a.module = module
	return ctx, nil
}

func (a *app) after(context.Context, *cli.Command) error {
	if a.module == nil {
		return nil
	}
	err := a.module.Close()
	a.module = nil
	return err
}

func (a *app) requireModule() (*composer.Module, error) {
	if a.module == nil {
		return nil, fmt.Errorf("module not initialised")
	}
	return a.module, nil
}

func (a *app) token(_ context.Context, cmd *cli.Command) error {
	module, err := a.requireModule()
	if err != nil {
		return err
	}
	ttl := cmd.Duration("ttl")
	if ttl <= 0 {
		ttl = module.Container().Config.Auth.TokenTTL
	}
	cred, err := module.Container().Issuer().Issue(cmd.String("subject"), cmd.StringSlice("cap"), ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, cred.Token)
	return nil
}

func (a *app) variants(context.Context, *cli.Command) error {
	for _, entry := range sections.Describe() {
		fmt.Fprintf(a.out, "%s\t%s\n", entry.Variant, entry.Label)
	}
	return nil
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	if cmd.NArg() < 1 {
		return "", fmt.Errorf("%s is required", name)
	}
	return cmd.Args().First(), nil
}
