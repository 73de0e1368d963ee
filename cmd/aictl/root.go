package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	ai "github.com/bitop-dev/go-ai"
	"github.com/bitop-dev/go-ai/internal/config"
	"github.com/bitop-dev/go-ai/openai"
	"github.com/spf13/cobra"
)

// clientFactory builds adapters from loaded configuration.
type clientFactory interface {
	Embedding(cfg config.Config, logger *slog.Logger) (ai.EmbeddingClient, error)
	Chat(cfg config.Config, logger *slog.Logger) (ai.ChatClient, error)
}

type defaultFactory struct{}

func (defaultFactory) Embedding(cfg config.Config, logger *slog.Logger) (ai.EmbeddingClient, error) {
	c := openai.NewClient(cfg.OpenAIConfig(logger))
	return c.EmbeddingClient(cfg.Embedding.Model, cfg.MetadataMode(),
		openai.WithEmbeddingOptions(openai.EmbeddingOptions{Dimensions: cfg.Embedding.Dimensions}))
}

func (defaultFactory) Chat(cfg config.Config, logger *slog.Logger) (ai.ChatClient, error) {
	c := openai.NewClient(cfg.OpenAIConfig(logger))
	return c.ChatClient(cfg.Chat.Model)
}

type app struct {
	factory clientFactory
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
}

func newRootCmd(factory clientFactory) *cobra.Command {
	a := &app{factory: factory}

	root := &cobra.Command{
		Use:          "aictl",
		Short:        "Embeddings and chat against OpenAI-compatible APIs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.Logger(cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file path (YAML)")

	root.AddCommand(newEmbedCmd(a))
	root.AddCommand(newEmbedDocCmd(a))
	root.AddCommand(newDimsCmd(a))
	root.AddCommand(newChatCmd(a))
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
