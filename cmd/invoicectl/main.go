// invoicectl works on invoice documents from the command line: render a
// PDF, produce a share link parameter, or decode one back into JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/invoicepdf/invoice-api/internal/application/document"
	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
	"github.com/invoicepdf/invoice-api/internal/infrastructure/linkcodec"
	"github.com/invoicepdf/invoice-api/internal/infrastructure/pdf"
)

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Invoice document toolbox",
	Long: `invoicectl validates, renders and shares invoice documents without
running the API server. Documents are plain JSON files in the same shape
the API and the share links carry.`,
	SilenceUsage: true,
}

var renderCmd = &cobra.Command{
	Use:   "render [document.json]",
	Short: "Render a document to PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		doc, _ = invoice.RecomputeDocument(doc)

		data, err := pdf.NewRenderer().Render(context.Background(), document.BuildRenderData(doc))
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

var shareCmd = &cobra.Command{
	Use:   "share [document.json]",
	Short: "Encode a document into a share link parameter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		param, err := linkcodec.New().Encode(payload)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), param)
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode [param]",
	Short: "Decode a share link parameter back into document JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := linkcodec.New().Decode(args[0])
		if err != nil {
			return err
		}
		doc, err := invoice.Validate(payload)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the canonical default document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := json.MarshalIndent(invoice.DefaultDocument(time.Now()), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func readDocument(path string) (*invoice.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := invoice.Validate(raw)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func init() {
	renderCmd.Flags().StringP("output", "o", "invoice.pdf", "Output PDF path")
	rootCmd.AddCommand(renderCmd, shareCmd, decodeCmd, defaultCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
