/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/chatpdf/handler"
)

// askCmd answers a question from the index left by a previous process run.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the processed PDF files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return
		}
		showSources, _ := cmd.Flags().GetBool("sources")

		p, err := newPipeline(context.Background(), loadConfig())
		if err != nil {
			log.Fatalf("Failed to initialize services: %v", err)
		}
		defer p.Close()

		ctx := context.Background()
		results, err := p.retriever.Retrieve(ctx, question)
		if err != nil {
			fmt.Println(handler.AskErrorMessage(err))
			return
		}
		reply, err := p.answerer.Answer(ctx, question, results)
		if err != nil {
			fmt.Println(handler.AskErrorMessage(err))
			return
		}
		fmt.Println("Reply: " + reply)

		if showSources {
			for _, r := range results {
				fmt.Printf("\n--- chunk %d (distance %.4f) ---\n%s\n", r.Chunk.Index, r.Distance, r.Chunk.Content)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolP("sources", "s", false, "Print the retrieved chunks after the reply")
}
