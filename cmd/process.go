/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/chatpdf/handler"
	"github.com/tieubaoca/chatpdf/service"
	"github.com/tieubaoca/chatpdf/utils"
)

// processCmd builds the index from PDF files on disk
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract, chunk and index PDF files",
	Long: `Builds the index from the given PDF files and replaces the previous one.

  chatpdf process -f report.pdf -f annex.pdf
  chatpdf process --directory ./docs`,
	Run: func(cmd *cobra.Command, args []string) {
		filePaths, _ := cmd.Flags().GetStringArray("file")
		directory, _ := cmd.Flags().GetString("directory")

		if directory != "" {
			found, err := service.ListPDFs(directory)
			if err != nil {
				log.Fatalf("Failed to list %s: %v", directory, err)
			}
			filePaths = append(filePaths, found...)
		}
		if len(filePaths) == 0 {
			fmt.Println(handler.MsgNoFiles)
			return
		}

		files, err := service.ReadPDFFiles(filePaths)
		if err != nil {
			log.Fatalf("Failed to read PDF files: %v", err)
		}
		for _, path := range filePaths {
			log.Printf("Queued %s", utils.GetFileNameWithoutExt(path))
		}

		p, err := newPipeline(context.Background(), loadConfig())
		if err != nil {
			log.Fatalf("Failed to initialize services: %v", err)
		}
		defer p.Close()

		fmt.Println(handler.MsgProcessing)
		res, err := p.session.Process(context.Background(), files)
		if err != nil {
			fmt.Println(handler.ProcessErrorMessage(err))
			return
		}
		fmt.Printf("%s: %d files, %d characters, %d chunks (build %s)\n",
			handler.MsgDone, len(res.Files), res.Characters, res.Chunks, res.BuildID)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringArrayP("file", "f", []string{}, "Path to a PDF file to process, repeatable")
	processCmd.Flags().String("directory", "", "Process every PDF in this directory")
}
