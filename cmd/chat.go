package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/render"
)

// chatHistoryWindow caps how many prior turns are replayed per message.
const chatHistoryWindow = 10

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the plant-care assistant",
	Long: `Asks the LeafDoctor AI assistant a plant-care question. With no
arguments, starts an interactive conversation; type "exit" to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newAPIClient(cfg)
	provider, err := newAssistant(cfg, client)
	if err != nil {
		return err
	}

	ctx := context.Background()

	// One-shot mode.
	if len(args) > 0 {
		reply, err := provider.Reply(ctx, strings.Join(args, " "), nil)
		if err != nil {
			return fmt.Errorf("assistant failed: %w", err)
		}
		printReply(reply)
		return nil
	}

	fmt.Printf("LeafDoctor AI (%s). Type \"exit\" to leave.\n\n", provider.Name())

	var conversation []api.ChatMessage
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}

		window := conversation
		if len(window) > chatHistoryWindow {
			window = window[len(window)-chatHistoryWindow:]
		}

		reply, err := provider.Reply(ctx, question, window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		printReply(reply)

		conversation = append(conversation,
			api.ChatMessage{Role: "user", Content: question},
			api.ChatMessage{Role: "assistant", Content: reply},
		)
	}
}

func printReply(reply string) {
	delay := render.DefaultTypeDelay
	if plain {
		delay = 0
	}
	tw := &render.Typewriter{Writer: os.Stdout, Delay: delay}
	tw.Reveal(render.StripMarkdown(reply))
	fmt.Println()
}
