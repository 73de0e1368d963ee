package main

import (
	"fmt"
	"os"
	"strings"

	ai "github.com/bitop-dev/go-ai"
	"github.com/spf13/cobra"
)

type embeddingOutput struct {
	Index      int       `json:"index"`
	Dimensions int       `json:"dimensions"`
	Vector     []float32 `json:"vector,omitempty"`
}

type embedOutput struct {
	Model      string            `json:"model,omitempty"`
	Embeddings []embeddingOutput `json:"embeddings"`
	Usage      map[string]any    `json:"usage,omitempty"`
}

func newEmbedCmd(a *app) *cobra.Command {
	var (
		withVectors bool
		parallel    int
	)
	cmd := &cobra.Command{
		Use:   "embed TEXT...",
		Short: "Embed one or more texts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.factory.Embedding(a.cfg, a.logger)
			if err != nil {
				return err
			}
			var resp *ai.EmbeddingResponse
			if parallel > 1 {
				resp, err = ai.EmbedParallel(cmd.Context(), client, args, parallel)
			} else {
				resp, err = client.Call(cmd.Context(), ai.NewEmbeddingRequest(args...))
			}
			if err != nil {
				return err
			}

			out := embedOutput{Embeddings: make([]embeddingOutput, 0, len(resp.Embeddings))}
			if resp.Metadata.Model != "" {
				out.Model = resp.Metadata.Model
				out.Usage = resp.Metadata.Map()
			}
			for _, e := range resp.Embeddings {
				eo := embeddingOutput{Index: e.Index, Dimensions: len(e.Vector)}
				if withVectors {
					eo.Vector = e.Vector
				}
				out.Embeddings = append(out.Embeddings, eo)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&withVectors, "vectors", false, "include vectors in the output")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "split the texts across up to N concurrent requests")
	return cmd
}

func newEmbedDocCmd(a *app) *cobra.Command {
	var (
		file string
		meta []string
	)
	cmd := &cobra.Command{
		Use:   "embed-doc",
		Short: "Embed a document file, folding metadata in according to the configured metadata mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			md, err := parseMetadata(meta)
			if err != nil {
				return err
			}
			doc := ai.NewDocument(string(content), md)

			client, err := a.factory.Embedding(a.cfg, a.logger)
			if err != nil {
				return err
			}
			vec, err := client.EmbedDocument(cmd.Context(), doc)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"id":            doc.ID,
				"metadata_mode": a.cfg.MetadataMode(),
				"content":       doc.FormattedContent(a.cfg.MetadataMode()),
				"dimensions":    len(vec),
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "document file")
	cmd.Flags().StringArrayVarP(&meta, "meta", "m", nil, "metadata entry key=value (repeatable)")
	return cmd
}

func parseMetadata(entries []string) (map[string]any, error) {
	md := make(map[string]any, len(entries))
	for _, e := range entries {
		k, v, ok := strings.Cut(e, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("metadata %q: expected key=value", e)
		}
		md[k] = v
	}
	return md, nil
}

func newDimsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dims",
		Short: "Print the vector size of the configured embedding model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.factory.Embedding(a.cfg, a.logger)
			if err != nil {
				return err
			}
			n, err := client.Dimensions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
