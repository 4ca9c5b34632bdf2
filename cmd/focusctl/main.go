package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag   string
	ownerFlag string
	taskFlag  string
	rootCmd   = &cobra.Command{
		Use:   "focusctl",
		Short: "CLI client for the FocusFlow assistant REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:11500", "Assistant service base URL")
	rootCmd.PersistentFlags().StringVarP(&ownerFlag, "owner", "o", "", "Owner ID (required)")

	chatCmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send one conversation turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			if ownerFlag == "" {
				return fmt.Errorf("--owner required")
			}
			return runChat(apiFlag, ownerFlag, name, taskFlag, args[0], os.Stdout)
		},
	}
	chatCmd.Flags().StringVarP(&taskFlag, "task", "t", "", "Task ID (omit to talk to the life coach)")
	chatCmd.Flags().StringP("name", "n", "", "Display name sent with the profile")
	rootCmd.AddCommand(chatCmd)

	threadsCmd := &cobra.Command{
		Use:   "threads",
		Short: "List the owner's conversation threads",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ownerFlag == "" {
				return fmt.Errorf("--owner required")
			}
			return runThreads(apiFlag, ownerFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(threadsCmd)

	historyCmd := &cobra.Command{
		Use:   "history [threadId]",
		Short: "Print a thread's messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(historyCmd)

	clearCmd := &cobra.Command{
		Use:   "clear [threadId]",
		Short: "Empty a thread's messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(clearCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
