package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/freightlayer/extraction-engine/cmd/extractctl/ui"
	"github.com/freightlayer/extraction-engine/internal/config"
	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/pkg/extraction"
)

var (
	extractSourceRef    string
	extractSubjectFile  string
	extractBodyFile     string
	extractPDFFile      string
	extractDocumentType string
	extractCarrierHint  string
	extractSenderID     string
	extractOrigSenderID string
	extractOutputJSON   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured fields from an email or document",
	Long: `extract runs the freight correspondence extraction pipeline over the
subject/body/PDF text supplied via --subject-file, --body-file and
--pdf-file, printing the extracted fields and their confidence scores,
or the full record as JSON with --json.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractSourceRef, "source-ref", "", "opaque identifier for this email/document (required)")
	extractCmd.Flags().StringVar(&extractSubjectFile, "subject-file", "", "path to a file containing the email subject")
	extractCmd.Flags().StringVar(&extractBodyFile, "body-file", "", "path to a file containing the email body text")
	extractCmd.Flags().StringVar(&extractPDFFile, "pdf-file", "", "path to a file containing extracted PDF text")
	extractCmd.Flags().StringVar(&extractDocumentType, "document-type", "", "document type hint (e.g. bill_of_lading, hbl, booking_confirmation)")
	extractCmd.Flags().StringVar(&extractCarrierHint, "carrier-hint", "", "carrier hint (e.g. cma_cgm, maersk)")
	extractCmd.Flags().StringVar(&extractSenderID, "sender", "", "sender identity (email address or domain)")
	extractCmd.Flags().StringVar(&extractOrigSenderID, "original-sender", "", "original sender identity, when the message was relayed internally")
	extractCmd.Flags().BoolVar(&extractOutputJSON, "json", false, "print the full extraction record as JSON")
	extractCmd.MarkFlagRequired("source-ref")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ui.Section("Freight Correspondence Extraction")

	subject, err := readOptionalFile(extractSubjectFile)
	if err != nil {
		return fmt.Errorf("read subject file: %w", err)
	}
	body, err := readOptionalFile(extractBodyFile)
	if err != nil {
		return fmt.Errorf("read body file: %w", err)
	}
	pdfText, err := readOptionalFile(extractPDFFile)
	if err != nil {
		return fmt.Errorf("read pdf file: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := extraction.NewClientWithConfig(cfg, os.Getenv("OPENROUTER_API_KEY"))
	if err != nil {
		return fmt.Errorf("build extraction client: %w", err)
	}
	defer client.Close()

	in := model.Input{
		SourceRef:              extractSourceRef,
		Subject:                subject,
		BodyText:               body,
		PDFText:                pdfText,
		SenderIdentity:         extractSenderID,
		OriginalSenderIdentity: extractOrigSenderID,
		CarrierHint:            extractCarrierHint,
		DocumentType:           extractDocumentType,
	}

	ui.Info("source_ref: %s", in.SourceRef)
	if in.DocumentType != "" {
		ui.Info("document_type: %s", in.DocumentType)
	}
	ui.Newline()

	spinner := ui.NewSpinner("Running extraction pipeline...")
	spinner.Start()
	record, err := client.Extract(ctx, in)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractOutputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	printSummary(record)
	return nil
}

func readOptionalFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printSummary(record *model.ExtractionRecord) {
	ui.Success("Extraction completed")
	ui.Newline()
	ui.Section("Metadata")
	ui.Table([]string{"Metric", "Value"}, [][]string{
		{"Strategy", string(record.Metadata.Strategy)},
		{"Overall Confidence", ui.ConfidenceString(record.Metadata.OverallConfidence)},
		{"Total Fields", fmt.Sprintf("%d", record.Metadata.TotalFieldCount)},
		{"AI Called", fmt.Sprintf("%t", record.Metadata.AICalled)},
		{"Processing Time", ui.FormatDuration(time.Duration(record.Metadata.ProcessingTimeMS) * time.Millisecond)},
	})

	if len(record.Fields) > 0 {
		ui.Newline()
		ui.Section("Fields")
		rows := make([][]string, 0, len(record.Fields))
		for kind, field := range record.Fields {
			rows = append(rows, []string{
				string(kind), field.RawSpan, string(field.Method), ui.ConfidenceString(field.Confidence),
			})
		}
		ui.Table([]string{"Kind", "Raw Span", "Method", "Confidence"}, rows)
	}

	if len(record.Metadata.Issues) > 0 {
		ui.Newline()
		ui.Section("Issues")
		for _, issue := range record.Metadata.Issues {
			switch issue.Severity {
			case model.SeverityCritical:
				ui.Error("%s: %s", issue.Field, issue.Description)
			default:
				ui.Warning("%s: %s", issue.Field, issue.Description)
			}
		}
	}

	if record.Judgement != nil {
		ui.Newline()
		ui.Section("Judgement")
		ui.Info("verdict: %s (score %s)", record.Judgement.Verdict, ui.ConfidenceString(record.Judgement.Score))
	}
}
