// Package markdown turns Markdown files with YAML frontmatter into page
// documents and renders Markdown text for section previews.
package markdown
