package openapi

import (
	"strings"

	"github.com/goliatone/go-composer/internal/validation"
	"github.com/goliatone/go-composer/sections"
)

const bearerScheme = "bearerAuth"

// PagesDocument describes the pages API mounted under basePath.
func PagesDocument(basePath, version string) *Document {
	doc := NewDocument("Composer Pages API", version)
	base := "/" + strings.Trim(strings.TrimSpace(basePath), "/")
	if base == "/" {
		base = ""
	}

	documentSchema := validation.DocumentSchema()
	delete(documentSchema, "$schema")
	doc.AddSchema("PageDocument", documentSchema)
	doc.AddSchema("PageContent", map[string]any{
		"type":     "object",
		"required": []any{"key", "content"},
		"properties": map[string]any{
			"key":        map[string]any{"type": "string"},
			"revision":   map[string]any{"type": "integer"},
			"updated_at": map[string]any{"type": "string", "format": "date-time"},
			"content": map[string]any{
				"nullable": true,
				"allOf":    []any{ref("PageDocument")},
			},
		},
	})
	doc.AddSchema("PageSaved", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"key":        map[string]any{"type": "string"},
			"revision":   map[string]any{"type": "integer"},
			"updated_at": map[string]any{"type": "string", "format": "date-time"},
		},
	})
	doc.AddSchema("Error", map[string]any{
		"type":     "object",
		"required": []any{"error"},
		"properties": map[string]any{
			"error": map[string]any{"type": "string"},
			"issues": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"location": map[string]any{"type": "string"},
						"message":  map[string]any{"type": "string"},
					},
				},
			},
		},
	})
	doc.AddSchema("Variant", map[string]any{
		"type": "string",
		"enum": variantEnum(),
	})

	keyParam := map[string]any{
		"name":     "key",
		"in":       "path",
		"required": true,
		"schema":   map[string]any{"type": "string"},
	}
	content := base + "/pages/{key}/content"
	doc.Paths[base+"/pages"] = map[string]any{
		"get": operation("listPages", "List stored pages", nil, map[string]any{
			"200": jsonResponse("Page summaries", map[string]any{"type": "object"}),
		}),
	}
	doc.Paths[content] = map[string]any{
		"parameters": []any{keyParam},
		"get": operation("getPageContent", "Load a page document; missing pages return null content", nil, map[string]any{
			"200": jsonResponse("Page content", ref("PageContent")),
			"400": jsonResponse("Invalid key", ref("Error")),
		}),
		"patch": secured(operation("savePageContent", "Replace a page document", map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{"schema": ref("PageDocument")},
			},
		}, map[string]any{
			"200": jsonResponse("Saved", ref("PageSaved")),
			"401": jsonResponse("Missing or invalid token", ref("Error")),
			"403": jsonResponse("Missing pages:update", ref("Error")),
			"413": jsonResponse("Payload too large", ref("Error")),
			"422": jsonResponse("Invalid document", ref("Error")),
		})),
		"delete": secured(operation("deletePageContent", "Delete a page document", nil, map[string]any{
			"204": map[string]any{"description": "Deleted"},
			"401": jsonResponse("Missing or invalid token", ref("Error")),
			"403": jsonResponse("Missing pages:delete", ref("Error")),
			"404": jsonResponse("Not found", ref("Error")),
		})),
	}
	doc.Paths[base+"/variants"] = map[string]any{
		"get": operation("listVariants", "List section variants with their defaults", nil, map[string]any{
			"200": jsonResponse("Variant catalog", map[string]any{"type": "object"}),
		}),
	}
	doc.SetExtension("x-security-schemes", map[string]any{
		bearerScheme: map[string]any{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
	})
	return doc
}

func variantEnum() []any {
	variants := sections.Variants()
	out := make([]any, 0, len(variants))
	for _, v := range variants {
		out = append(out, string(v))
	}
	return out
}

func ref(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func jsonResponse(description string, schema map[string]any) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schema},
		},
	}
}

func operation(id, summary string, body map[string]any, responses map[string]any) map[string]any {
	op := map[string]any{
		"operationId": id,
		"summary":     summary,
		"responses":   responses,
	}
	if body != nil {
		op["requestBody"] = body
	}
	return op
}

func secured(op map[string]any) map[string]any {
	op["security"] = []any{map[string]any{bearerScheme: []any{}}}
	return op
}
