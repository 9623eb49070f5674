package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/goliatone/go-composer/internal/auth"
	editorcmd "github.com/goliatone/go-composer/internal/commands/editor"
	markdowncmd "github.com/goliatone/go-composer/internal/commands/markdown"
	"github.com/goliatone/go-composer/internal/di"
	"github.com/goliatone/go-composer/internal/editor"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/internal/render"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
)

type showOutput struct {
	Key       string            `json:"key"`
	Revision  int64             `json:"revision"`
	UpdatedBy string            `json:"updated_by,omitempty"`
	Content   sections.Document `json:"content"`
}

func (a *app) show(ctx context.Context, cmd *cli.Command) error {
	module, err := a.requireModule()
	if err != nil {
		return err
	}
	key, err := requireArg(cmd, "PAGE_KEY")
	if err != nil {
		return err
	}
	doc, record, err := module.Documents().LoadRecord(ctx, key)
	if err != nil {
		return err
	}
	return a.writeJSON(showOutput{
		Key:       record.Key,
		Revision:  record.Revision,
		UpdatedBy: record.UpdatedBy,
		Content:   doc,
	})
}

type editOutput struct {
	Page   string           `json:"page"`
	Report editorcmd.Report `json:"report"`
	State  string           `json:"state"`
	Dirty  bool             `json:"dirty"`
}

func (a *app) edit(ctx context.Context, cmd *cli.Command) error {
	module, err := a.requireModule()
	if err != nil {
		return err
	}
	path, err := requireArg(cmd, "SCRIPT")
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	script, err := editorcmd.ParseScript(file)
	if err != nil {
		return err
	}
	if page := strings.TrimSpace(cmd.String("page")); page != "" {
		script.Page = page
	}

	cred, claims, err := a.credential(cmd)
	if err != nil {
		return err
	}
	session, err := module.Container().NewEditorSession(di.EditorOptions{
		Remote:       cmd.Bool("remote"),
		Credentials:  auth.NewStaticCredentials(cred),
		Capabilities: claims.Checker(),
		Notifier:     editor.NotifierFunc(a.notify),
		Confirmer:    editor.AutoConfirm,
		Publish: func(_ context.Context, rawURL string) error {
			fmt.Fprintf(a.out, "url: %s\n", rawURL)
			return nil
		},
	})
	if err != nil {
		return err
	}

	report, runErr := editorcmd.Run(ctx, session, script)
	ctrl := session.Controller()
	if err := a.writeJSON(editOutput{
		Page:   ctrl.PageKey(),
		Report: report,
		State:  ctrl.State().String(),
		Dirty:  ctrl.Dirty(),
	}); err != nil {
		return err
	}
	return runErr
}

// credential returns --token verified against the configured secret, or a
// freshly issued pages:update token for --as.
func (a *app) credential(cmd *cli.Command) (auth.Credential, *auth.Claims, error) {
	container := a.module.Container()
	token := strings.TrimSpace(cmd.String("token"))
	if token == "" {
		cred, err := container.Issuer().Issue(cmd.String("as"), []string{permissions.PagesRead, permissions.PagesUpdate}, container.Config.Auth.TokenTTL)
		if err != nil {
			return auth.Credential{}, nil, err
		}
		token = cred.Token
	}
	claims, err := container.Verifier().Verify(token)
	if err != nil {
		return auth.Credential{}, nil, err
	}
	cred := auth.Credential{Token: token, Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		cred.ExpiresAt = claims.ExpiresAt.Time
	}
	return cred, claims, nil
}

func (a *app) notify(_ context.Context, n interfaces.Notification) {
	fmt.Fprintf(a.out, "%s: %s\n", n.Level, n.Message)
}

func (a *app) preview(ctx context.Context, cmd *cli.Command) error {
	module, err := a.requireModule()
	if err != nil {
		return err
	}
	key, err := requireArg(cmd, "PAGE_KEY")
	if err != nil {
		return err
	}
	doc, err := module.Documents().Load(ctx, key)
	if err != nil {
		return err
	}
	html, err := module.Preview().Dispatch(ctx, doc, render.View{Editing: cmd.Bool("editing")})
	if err != nil {
		return err
	}
	if out := strings.TrimSpace(cmd.String("out")); out != "" {
		return os.WriteFile(out, []byte(html), 0o644)
	}
	_, err = fmt.Fprintln(a.out, html)
	return err
}

func (a *app) importMarkdown(ctx context.Context, cmd *cli.Command) error {
	module, err := a.requireModule()
	if err != nil {
		return err
	}
	path, err := requireArg(cmd, "PATH")
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	set, err := module.Container().MarkdownCommands(nil)
	if err != nil {
		return err
	}

	var summary markdowncmd.Summary
	if info.IsDir() {
		err = set.ImportDirectory.Execute(ctx, markdowncmd.ImportDirectoryCommand{
			Directory: path,
			Actor:     cmd.String("actor"),
			DryRun:    cmd.Bool("dry-run"),
		})
		summary = set.ImportDirectory.Summary()
	} else {
		err = set.ImportPage.Execute(ctx, markdowncmd.ImportPageCommand{
			Path:   path,
			Key:    cmd.String("key"),
			Actor:  cmd.String("actor"),
			DryRun: cmd.Bool("dry-run"),
		})
		summary = set.ImportPage.Summary()
	}
	if err != nil {
		return err
	}
	return a.writeJSON(summary)
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
