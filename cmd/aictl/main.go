// Command aictl embeds text and documents and sends chat prompts through the
// OpenAI adapters.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(defaultFactory{}).Execute(); err != nil {
		os.Exit(1)
	}
}
