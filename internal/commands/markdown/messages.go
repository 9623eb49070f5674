package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importPageMessageType      = "composer.markdown.import_page"
	importDirectoryMessageType = "composer.markdown.import_directory"
)

func requiredPath(code, message string) validation.Rule {
	return validation.By(func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	})
}

// ImportPageCommand converts one Markdown file into a page document and
// saves it.
type ImportPageCommand struct {
	// Path is the Markdown file to read.
	Path string `json:"path"`
	// Key overrides the page key. When empty the frontmatter slug is used,
	// then the file name.
	Key string `json:"key,omitempty"`
	// Actor is recorded as the document's last editor.
	Actor string `json:"actor,omitempty"`
	// DryRun parses and validates without saving.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportPageCommand) Type() string { return importPageMessageType }

// Validate ensures a path is present before handlers execute.
func (m ImportPageCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Path, requiredPath("composer.markdown.import_page.path_required", "path is required")),
	)
}

// ImportDirectoryCommand imports every *.md file under Directory.
type ImportDirectoryCommand struct {
	Directory string `json:"directory"`
	Actor     string `json:"actor,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (m ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Directory, requiredPath("composer.markdown.import_directory.directory_required", "directory is required")),
	)
}
