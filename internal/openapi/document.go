package openapi

import "encoding/json"

const specVersion = "3.0.3"

// Document is an OpenAPI description assembled from plain maps.
type Document struct {
	OpenAPI    string
	Info       Info
	Paths      map[string]any
	Components Components
	Extensions map[string]any
}

type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

type Components struct {
	Schemas map[string]any
}

func NewDocument(title, version string) *Document {
	if version == "" {
		version = "dev"
	}
	return &Document{
		OpenAPI:    specVersion,
		Info:       Info{Title: title, Version: version},
		Paths:      map[string]any{},
		Components: Components{Schemas: map[string]any{}},
		Extensions: map[string]any{},
	}
}

// AddSchema registers a component schema. Empty names and nil schemas are ignored.
func (d *Document) AddSchema(name string, schema map[string]any) {
	if d == nil || name == "" || schema == nil {
		return
	}
	if d.Components.Schemas == nil {
		d.Components.Schemas = map[string]any{}
	}
	d.Components.Schemas[name] = schema
}

// SetExtension sets a top level vendor key such as x-security-schemes.
func (d *Document) SetExtension(key string, value any) {
	if d == nil || key == "" {
		return
	}
	if d.Extensions == nil {
		d.Extensions = map[string]any{}
	}
	d.Extensions[key] = value
}

// AsMap flattens the document, extensions included, into a JSON ready map.
func (d *Document) AsMap() map[string]any {
	if d == nil {
		return nil
	}
	info := map[string]any{"title": d.Info.Title, "version": d.Info.Version}
	if d.Info.Description != "" {
		info["description"] = d.Info.Description
	}
	paths := d.Paths
	if paths == nil {
		paths = map[string]any{}
	}
	out := map[string]any{
		"openapi": d.OpenAPI,
		"info":    info,
		"paths":   paths,
	}
	if len(d.Components.Schemas) > 0 {
		out["components"] = map[string]any{"schemas": d.Components.Schemas}
	}
	for key, value := range d.Extensions {
		if _, reserved := out[key]; reserved {
			continue
		}
		out[key] = value
	}
	return out
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.AsMap())
}
