/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/chatpdf/handler"
)

// startServerCmd represents the startServer command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat server",
	Long:  `Serves the upload form and the question box, plus the JSON API under /api/v1.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		p, err := newPipeline(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize services: %v", err)
		}
		defer p.Close()

		router := handler.NewRouter(p.session, cfg.CorsOrigins)

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
