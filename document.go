package ai

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// MetadataMode selects which document metadata is folded into the text that
// is sent to a model.
type MetadataMode string

const (
	MetadataModeAll       MetadataMode = "all"
	MetadataModeEmbed     MetadataMode = "embed"
	MetadataModeInference MetadataMode = "inference"
	MetadataModeNone      MetadataMode = "none"
)

func (m MetadataMode) Valid() bool {
	switch m {
	case MetadataModeAll, MetadataModeEmbed, MetadataModeInference, MetadataModeNone:
		return true
	}
	return false
}

func ParseMetadataMode(s string) (MetadataMode, error) {
	m := MetadataMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown metadata mode %q", ErrInvalidArgument, s)
	}
	return m, nil
}

type ContentFormatter interface {
	Format(doc *Document, mode MetadataMode) string
}

type Document struct {
	ID       string
	Content  string
	Metadata map[string]any

	// Formatter defaults to NewDefaultContentFormatter() when nil.
	Formatter ContentFormatter
}

func NewDocument(content string, metadata map[string]any) *Document {
	md := make(map[string]any, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	return &Document{
		ID:       uuid.NewString(),
		Content:  content,
		Metadata: md,
	}
}

func (d *Document) FormattedContent(mode MetadataMode) string {
	f := d.Formatter
	if f == nil {
		f = NewDefaultContentFormatter()
	}
	return f.Format(d, mode)
}

const (
	templateKey            = "{key}"
	templateValue          = "{value}"
	templateMetadataString = "{metadata_string}"
	templateContent        = "{content}"
)

// DefaultContentFormatter renders "key: value" metadata lines above the
// document content. Metadata keys are rendered in sorted order.
type DefaultContentFormatter struct {
	MetadataTemplate  string
	MetadataSeparator string
	TextTemplate      string

	ExcludedInferenceMetadataKeys []string
	ExcludedEmbedMetadataKeys     []string
}

func NewDefaultContentFormatter() DefaultContentFormatter {
	return DefaultContentFormatter{
		MetadataTemplate:  templateKey + ": " + templateValue,
		MetadataSeparator: "\n",
		TextTemplate:      templateMetadataString + "\n\n" + templateContent,
	}
}

func (f DefaultContentFormatter) Format(doc *Document, mode MetadataMode) string {
	md := f.filterMetadata(doc.Metadata, mode)

	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		line := strings.ReplaceAll(f.MetadataTemplate, templateKey, k)
		line = strings.ReplaceAll(line, templateValue, fmt.Sprint(md[k]))
		lines = append(lines, line)
	}

	out := strings.ReplaceAll(f.TextTemplate, templateMetadataString, strings.Join(lines, f.MetadataSeparator))
	return strings.ReplaceAll(out, templateContent, doc.Content)
}

func (f DefaultContentFormatter) filterMetadata(md map[string]any, mode MetadataMode) map[string]any {
	var excluded []string
	switch mode {
	case MetadataModeAll:
	case MetadataModeEmbed:
		excluded = f.ExcludedEmbedMetadataKeys
	case MetadataModeInference:
		excluded = f.ExcludedInferenceMetadataKeys
	default:
		return nil
	}

	out := make(map[string]any, len(md))
	for k, v := range md {
		if slices.Contains(excluded, k) {
			continue
		}
		out[k] = v
	}
	return out
}
