package main

import (
	"strings"

	ai "github.com/bitop-dev/go-ai"
	"github.com/spf13/cobra"
)

type chatOutput struct {
	Text         string          `json:"text"`
	FinishReason ai.FinishReason `json:"finish_reason,omitempty"`
	Model        string          `json:"model,omitempty"`
	Usage        *ai.Usage       `json:"usage,omitempty"`
}

func newChatCmd(a *app) *cobra.Command {
	var (
		system      string
		temperature float32
	)
	cmd := &cobra.Command{
		Use:   "chat PROMPT...",
		Short: "Send a prompt and print the first generation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.factory.Chat(a.cfg, a.logger)
			if err != nil {
				return err
			}

			var msgs []ai.Message
			if system != "" {
				msgs = append(msgs, ai.System(system))
			}
			msgs = append(msgs, ai.User(strings.Join(args, " ")))
			prompt := ai.NewPrompt(msgs...)
			if cmd.Flags().Changed("temperature") {
				prompt = prompt.WithOptions(ai.ChatOptions{Temperature: &temperature})
			}

			resp, err := client.Call(cmd.Context(), prompt)
			if err != nil {
				return err
			}
			var out chatOutput
			if len(resp.Generations()) > 0 {
				gen := resp.Generation()
				out.Text = gen.Text
				out.FinishReason = gen.Metadata.FinishReason
			}
			if md, ok := resp.GenerationMetadata(); ok {
				out.Model = md.Model
				out.Usage = &md.Usage
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&system, "system", "", "system message")
	cmd.Flags().Float32Var(&temperature, "temperature", 0, "sampling temperature")
	return cmd
}
