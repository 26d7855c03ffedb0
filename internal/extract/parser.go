// Package extract turns JSON candidate documents produced by an upstream
// language model into typed profile requests.
package extract

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dtroode/studyprofile-server/internal/model"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrInvalidCandidate is returned when a document does not match its schema.
var ErrInvalidCandidate = errors.New("invalid candidate document")

const maxReportedErrors = 3

var _ model.Extractor = (*Parser)(nil)

// Parser validates candidate documents against embedded JSON schemas.
type Parser struct {
	change *gojsonschema.Schema
	read   *gojsonschema.Schema
	delete *gojsonschema.Schema
}

// NewParser compiles the embedded schemas.
func NewParser() (*Parser, error) {
	var p Parser
	for _, s := range []struct {
		file string
		dst  **gojsonschema.Schema
	}{
		{"schemas/change.json", &p.change},
		{"schemas/read.json", &p.read},
		{"schemas/delete.json", &p.delete},
	} {
		raw, err := schemaFS.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", s.file, err)
		}
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s: %w", s.file, err)
		}
		*s.dst = compiled
	}
	return &p, nil
}

func (p *Parser) ExtractChange(_ context.Context, text string) (model.ChangeRequest, error) {
	var req model.ChangeRequest
	err := decode(p.change, text, &req)
	return req, err
}

func (p *Parser) ExtractRead(_ context.Context, text string) (model.ReadRequest, error) {
	var req model.ReadRequest
	err := decode(p.read, text, &req)
	return req, err
}

func (p *Parser) ExtractDelete(_ context.Context, text string) (model.DeleteRequest, error) {
	var req model.DeleteRequest
	err := decode(p.delete, text, &req)
	return req, err
}

func decode(schema *gojsonschema.Schema, text string, dst any) error {
	doc := stripFence(text)
	if doc == "" {
		return fmt.Errorf("%w: empty document", ErrInvalidCandidate)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCandidate, err)
	}
	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidCandidate, summarize(errs))
	}

	if err := json.Unmarshal([]byte(doc), dst); err != nil {
		return fmt.Errorf("failed to decode candidate document: %w", err)
	}
	return nil
}

// stripFence removes a surrounding ```json fence that models like to emit.
func stripFence(text string) string {
	doc := strings.TrimSpace(text)
	if !strings.HasPrefix(doc, "```") {
		return doc
	}
	doc = strings.TrimPrefix(doc, "```")
	doc = strings.TrimPrefix(doc, "json")
	doc = strings.TrimSuffix(strings.TrimSpace(doc), "```")
	return strings.TrimSpace(doc)
}

func summarize(errs []string) string {
	if len(errs) <= maxReportedErrors {
		return strings.Join(errs, "; ")
	}
	return strings.Join(errs[:maxReportedErrors], "; ") + fmt.Sprintf("; ... and %d more", len(errs)-maxReportedErrors)
}
