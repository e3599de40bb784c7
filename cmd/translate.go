/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/valpere/contran/internal/detector"
	"github.com/valpere/contran/internal/evaluator"
	"github.com/valpere/contran/internal/language"
	"github.com/valpere/contran/internal/pipeline"
	"github.com/valpere/contran/internal/store"
	"github.com/valpere/contran/internal/validator"
)

var (
	targetLang    string
	sourceLang    string
	formalityFlag string

	openrouterKey string

	useDedicated      bool
	dedicatedProvider string
	deeplKey          string
	deeplFree         bool
	googleCredentials string

	protocolFlag  string
	branchTimeout time.Duration

	dbPath    string
	noHistory bool
	jsonOut   bool
)

var translateCmd = &cobra.Command{
	Use:   "translate <sentence>",
	Short: "Translate a sentence by multi-model consensus",
	Long: `Translate a sentence using several LLM backends in parallel and
synthesize a single best translation from the candidates.

The backends are chosen per target language. When translating into
English, the choice is optimised for the source language instead; pass
--source, or --source auto to detect it.

The dedicated translation service (DeepL by default) is only used with
--dedicated; check the provider's terms before enabling it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sentence := args[0]
		if sentence == "" {
			return fmt.Errorf("sentence must not be empty")
		}

		logger, err := newLogger()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()

		target, ok := language.Parse(targetLang)
		if !ok {
			return fmt.Errorf("unknown target language: %s", targetLang)
		}

		source := language.Unknown
		switch sourceLang {
		case "":
		case "auto":
			if detected, ok := detector.New().Detect(sentence); ok {
				source = detected
				fmt.Fprintf(os.Stderr, "Detected source language: %s\n", source.LLMFormat())
			}
		default:
			if source, ok = language.Parse(sourceLang); !ok {
				return fmt.Errorf("unknown source language: %s", sourceLang)
			}
		}

		formality, ok := language.ParseFormality(formalityFlag)
		if !ok {
			return fmt.Errorf("unknown formality: %s (use less, normal, or more)", formalityFlag)
		}

		protocolName := protocolFlag
		if protocolName == "" {
			protocolName = viper.GetString("evaluation.protocol")
		}
		protocol, err := evaluator.ParseProtocol(protocolName)
		if err != nil {
			return err
		}

		completer, err := buildCompleter(openrouterKey, logger)
		if err != nil {
			return err
		}

		dedicatedEnabled := useDedicated || viper.GetBool("dedicated.enabled")
		dedicated, err := buildDedicated(dedicatedEnabled, dedicatedProvider, deeplKey, deeplFree, googleCredentials)
		if err != nil {
			return err
		}

		p := pipeline.New(completer, dedicated, pipeline.Config{
			DedicatedEnabled: dedicatedEnabled,
			Protocol:         protocol,
			BranchTimeout:    branchTimeout,
		}, logger)

		ctx := context.Background()
		req := pipeline.Request{
			Sentence:  sentence,
			Target:    target,
			Source:    source,
			Formality: formality,
		}

		resp, err := p.ConsensusTranslate(ctx, req)
		if err != nil {
			return err
		}

		if !noHistory {
			saveHistory(ctx, logger, req, resp)
		}

		warnOnLanguageMismatch(resp, target)

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}
		return printResponse(resp)
	},
}

func printResponse(resp *pipeline.Response) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tSCORE\tLATENCY\tTEXT")
	for _, tr := range resp.Translations {
		latency := "-"
		if tr.LatencyMs > 0 {
			latency = fmt.Sprintf("%dms", tr.LatencyMs)
		}
		score := "-"
		if !tr.Combined {
			score = fmt.Sprintf("%d", tr.Score)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tr.Model, score, latency, tr.Text)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nTotal cost: %s\n", formatCost(uint64(resp.TotalCostThousandthsCent)))
	return nil
}

// saveHistory records the run in the ledger. Failures only warn; history
// is an audit trail, not part of the pipeline.
func saveHistory(ctx context.Context, logger *zap.Logger, req pipeline.Request, resp *pipeline.Response) {
	path := dbPath
	if path == "" {
		path = viper.GetString("history.db")
	}

	db, err := store.New(path)
	if err != nil {
		logger.Warn("failed to open history database", zap.Error(err))
		return
	}
	defer db.Close()

	runID := uuid.New().String()
	run := store.Run{
		ID:         runID,
		Sentence:   req.Sentence,
		SourceLang: req.Source.LLMFormat(),
		TargetLang: req.Target.LLMFormat(),
		Formality:  req.Formality.String(),
		TotalCost:  resp.TotalCostThousandthsCent,
		CreatedAt:  time.Now(),
	}
	if err := db.SaveRun(ctx, run); err != nil {
		logger.Warn("failed to record run", zap.Error(err))
		return
	}
	for _, tr := range resp.Translations {
		err := db.SaveTranslation(ctx, runID, store.Translation{
			Model:     tr.Model,
			Combined:  tr.Combined,
			Text:      tr.Text,
			Score:     tr.Score,
			LatencyMs: tr.LatencyMs,
		})
		if err != nil {
			logger.Warn("failed to record translation", zap.String("model", tr.Model), zap.Error(err))
		}
	}
}

// warnOnLanguageMismatch flags a synthesized result that does not look
// like the target language. Advisory only.
func warnOnLanguageMismatch(resp *pipeline.Response, target language.Language) {
	for _, tr := range resp.Translations {
		if !tr.Combined {
			continue
		}
		if ok, err := validator.New().IsValid(tr.Text, target); !ok && err != nil {
			fmt.Fprintf(os.Stderr, "Warning: synthesized translation may be in the wrong language: %v\n", err)
		}
		return
	}
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language (name or ISO code, required)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "", "Source language (name, ISO code, or 'auto')")
	translateCmd.Flags().StringVarP(&formalityFlag, "formality", "f", "normal", "Formality: less, normal, or more")

	translateCmd.Flags().StringVar(&openrouterKey, "openrouter-key", "", "OpenRouter API key")

	translateCmd.Flags().BoolVar(&useDedicated, "dedicated", false, "Enable the dedicated translation service")
	translateCmd.Flags().StringVar(&dedicatedProvider, "dedicated-provider", "deepl", "Dedicated provider: deepl or google")
	translateCmd.Flags().StringVar(&deeplKey, "deepl-key", "", "DeepL API key")
	translateCmd.Flags().BoolVar(&deeplFree, "deepl-free", false, "Use the DeepL free-tier endpoint")
	translateCmd.Flags().StringVar(&googleCredentials, "google-credentials", "", "Path to Google Cloud credentials")

	translateCmd.Flags().StringVar(&protocolFlag, "protocol", "", "Evaluation protocol: scored or fenced")
	translateCmd.Flags().DurationVar(&branchTimeout, "timeout", 30*time.Second, "Per-backend timeout")

	translateCmd.Flags().StringVar(&dbPath, "db", "", "Run history database path")
	translateCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record the run")
	translateCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")

	translateCmd.MarkFlagRequired("target")
}
