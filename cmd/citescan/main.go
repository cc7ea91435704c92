package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/avoronov/zakondex/internal/config"
	"github.com/avoronov/zakondex/internal/corpus"
	"github.com/avoronov/zakondex/internal/logging"
	"github.com/avoronov/zakondex/internal/statute"
)

type fileReport struct {
	Path       string             `json:"path"`
	DocumentID string             `json:"document_id"`
	Citations  []statute.Citation `json:"citations"`
}

func main() {
	root := &cobra.Command{
		Use:   "citescan <path>",
		Short: "Scan statute files for citations and print a JSON report",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().StringSlice("ext", nil, "File extensions to scan (default from configuration)")

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("citescan: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	lg := logging.ForLevel(config.LogLevel())

	exts, _ := cmd.Flags().GetStringSlice("ext")
	if len(exts) == 0 {
		exts = config.CorpusExtensions()
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	var source corpus.Source
	if info.IsDir() {
		source = corpus.NewDirSource(args[0], exts, lg)
	} else {
		source = corpus.NewFileSource(args[0], lg)
	}

	rules, err := corpus.LoadCleanRules(config.CleanPatternsFile())
	if err != nil {
		return err
	}
	normalizer, err := statute.NewNormalizer(rules)
	if err != nil {
		return err
	}

	docs, err := source.Load(cmd.Context())
	if err != nil {
		return err
	}

	reports := make([]fileReport, 0, len(docs))
	total := 0
	for _, doc := range docs {
		citations := statute.ExtractCitations(normalizer.Normalize(doc.Text))
		if citations == nil {
			citations = []statute.Citation{}
		}
		total += len(citations)
		reports = append(reports, fileReport{Path: doc.Path, DocumentID: doc.ID, Citations: citations})
	}
	lg.Info("citation scan finished", "files", len(reports), "citations", total)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
