package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "viajo",
	Short: "Conversational AI travel assistant",
	Long: `Viajo is a conversational travel assistant. It chats with travelers
over WhatsApp or HTTP, incrementally builds up a structured trip from
the conversation, and moves the trip through its lifecycle once enough
is known to start planning. AI agents can drive the same trip actions
directly via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".viajo.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
