// Package pipeline implements C9: the pipeline orchestrator. It decides
// which layers to invoke for a given input, runs C3/C5 concurrently,
// merges via C7, decides whether to call C6 and/or C8, applies optional
// corrections, and emits the final record with metadata (§4.9).
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/freightlayer/extraction-engine/internal/aifill"
	"github.com/freightlayer/extraction-engine/internal/cache"
	"github.com/freightlayer/extraction-engine/internal/catalog"
	"github.com/freightlayer/extraction-engine/internal/config"
	"github.com/freightlayer/extraction-engine/internal/judge"
	"github.com/freightlayer/extraction-engine/internal/merge"
	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/observability"
	"github.com/freightlayer/extraction-engine/internal/regexextract"
	"github.com/freightlayer/extraction-engine/internal/schema"
	"github.com/freightlayer/extraction-engine/internal/sender"
)

// Engine owns the static components (catalog, schema registry) and
// optional AI/judge providers, and runs one input at a time through the
// full decision sequence of §4.9.
type Engine struct {
	Catalog  *catalog.Catalog
	Schemas  *schema.Registry
	AI       aifill.Provider
	Judge    aifill.Provider
	Config   config.Config

	// Cache is an optional result-memoization layer (§5 Concurrency &
	// Resource Model). A nil Cache disables memoization entirely; its
	// absence or failure never changes the extracted result, only
	// whether Run recomputes it.
	Cache cache.Client

	// Logger records per-record decisions (AI/judge invocation, cache
	// hits, strategy fallback). A nil Logger is replaced with a no-op
	// discard logger by New so Run never needs a nil check.
	Logger *observability.Logger
}

// New builds an Engine from its static components and configuration.
// AI and Judge providers may be nil, in which case the corresponding
// calls are always skipped (§4.6, §4.8 failure modes apply equally to
// "provider absent"). cacheClient may be nil to disable memoization.
// A nil logger falls back to a discard logger.
func New(cat *catalog.Catalog, schemas *schema.Registry, aiProvider, judgeProvider aifill.Provider, cacheClient cache.Client, cfg config.Config, logger *observability.Logger) *Engine {
	if logger == nil {
		logger = observability.NewLogger(observability.LogConfig{Level: "disabled"})
	}
	return &Engine{Catalog: cat, Schemas: schemas, AI: aiProvider, Judge: judgeProvider, Cache: cacheClient, Config: cfg, Logger: logger}
}

// Run executes the full pipeline for one input (§4.9 steps 1-7).
func (e *Engine) Run(ctx context.Context, in model.Input) (*model.ExtractionRecord, error) {
	start := time.Now()
	log := e.Logger.With().Str("source_ref", in.SourceRef).Logger()

	maxChars := e.Config.MaxTextChars
	if maxChars <= 0 {
		maxChars = 10000
	}
	combinedLen := len(in.Subject) + len(in.BodyText) + len(in.PDFText)
	if combinedLen == 0 || combinedLen > maxChars {
		// InputError (§7): never propagated. Emit an empty record with
		// strategy=ai_fallback and a single warning issue instead of
		// returning an error across the public boundary.
		log.Warn().Int("combined_len", combinedLen).Msg("input empty or exceeds max_text_chars")
		record := model.NewExtractionRecord(in.SourceRef)
		record.Metadata = model.Metadata{
			ProcessingTimeMS: time.Since(start).Milliseconds(),
			Strategy:         model.StrategyAIFallback,
			FieldSources:     map[model.Kind]model.Method{},
			CatalogVersion:   e.Config.Versions.CatalogVersion,
			SchemaSetVersion: e.Config.Versions.SchemaSetVersion,
			Issues: []model.Issue{{
				Severity:    model.SeverityWarning,
				Description: "input text is empty or exceeds the configured maximum after truncation",
			}},
		}
		return record, nil
	}

	text := in.CombinedText()
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	cacheKey := cache.Key(in.SourceRef, e.Config.Versions.CatalogVersion, e.Config.Versions.SchemaSetVersion, text)
	if e.Config.Cache.Enabled && e.Cache != nil {
		if cached, err := cache.Lookup(ctx, e.Cache, cacheKey); err == nil && cached != nil {
			log.Debug().Msg("cache hit")
			return cached, nil
		}
	}

	record := model.NewExtractionRecord(in.SourceRef)

	// Step 1: sender/carrier/document-type resolution.
	classification := sender.Classify(in.SenderIdentity, in.OriginalSenderIdentity)
	record.SenderCategory = &classification.Category
	carrierHint := classification.Carrier
	if in.CarrierHint != "" {
		carrierHint = in.CarrierHint
	}
	if carrierHint != "" {
		record.Carrier = &carrierHint
	}
	record.DocumentType = in.DocumentType

	subjectStart, subjectEnd := in.SubjectRegion()

	// Step 2: run C3 and C5 concurrently.
	regexStart := time.Now()
	var regexResult map[model.Kind][]*model.FieldRecord
	var schemaResult schema.Result
	var schemaAvailable bool
	strategy := model.StrategyRegexOnly

	now := time.Now()
	var issues []model.Issue
	var regexIssues []model.Issue

	group, gctx := errgroup.WithContext(ctx)
	_ = gctx
	group.Go(func() error {
		regexResult, regexIssues = regexextract.Extract(e.Catalog, regexextract.Request{
			Text:         text,
			SubjectStart: subjectStart,
			SubjectEnd:   subjectEnd,
			CarrierHint:  carrierHint,
			Now:          now,
			YearWindow:   regexextract.YearWindow{MinOffset: e.Config.YearWindow.MinOffset, MaxOffset: e.Config.YearWindow.MaxOffset},
		})
		return nil
	})
	if doc, ok := e.Schemas.Schema(in.DocumentType); ok {
		schemaAvailable = true
		group.Go(func() error {
			schemaResult = schema.Extract(doc, carrierHint, text, now, schema.YearWindow{MinOffset: e.Config.YearWindow.MinOffset, MaxOffset: e.Config.YearWindow.MaxOffset})
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("regex/schema extraction failed, falling back to ai_fallback strategy")
		strategy = model.StrategyAIFallback
		regexResult = nil
	} else {
		issues = append(issues, regexIssues...)
	}
	if in.DocumentType != "" && !schemaAvailable {
		log.Info().Str("document_type", in.DocumentType).Msg("schema mismatch, C5 skipped")
		issues = append(issues, model.Issue{
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("document_type %q is unrecognized; schema extraction (C5) was skipped", in.DocumentType),
		})
	}
	regexTimeMS := time.Since(regexStart).Milliseconds()

	// Step 2 continued / step 5 first pass: merge C3 + C5.
	mergeInputs := merge.Inputs{Regex: regexResult}
	if schemaAvailable {
		mergeInputs.Schema = schemaResult.Fields
	}
	mergeInputs.Parties = collectPartyCandidates(schemaResult, nil)
	merged := merge.Merge(mergeInputs)

	applyMerged(record, merged)
	if schemaAvailable {
		record.Tables = schemaResult.Tables
	}

	// Step 3: critical-field coverage and weighted overall confidence.
	overall := weightedConfidence(record, e.Config.Fields)
	regexConfidence := overall

	// Step 4: ordered AI-invocation rules.
	var aiTimeMS int64
	aiCalled := false
	aiReason := ""
	if e.Config.AI.Enabled && e.AI != nil {
		gaps, reason, call := decideAI(record, overall, e.Config)
		if call {
			aiCalled = true
			aiReason = reason
			log.Info().Str("ai_reason", reason).Int("gap_count", len(gaps)).Msg("invoking AI gap-filler")
			aiStart := time.Now()
			aiResults := aifill.Fill(ctx, e.AI, aifill.Request{
				Text:         text,
				Gaps:         gaps,
				CarrierHint:  carrierHint,
				DocumentType: in.DocumentType,
				MaxTextChars: e.Config.AI.MaxTextChars,
				Model:        e.Config.AI.Model,
				Deadline:     e.Config.AI.Deadline,
				Now:          now,
				YearWindow:   aifill.YearWindow{MinOffset: e.Config.YearWindow.MinOffset, MaxOffset: e.Config.YearWindow.MaxOffset},
			})
			aiTimeMS = time.Since(aiStart).Milliseconds()

			// Step 5: re-merge via C7 with AI results folded in.
			scalarAI := make(map[model.Kind]*model.FieldRecord)
			var partyAI []*model.FieldRecord
			for k, rec := range aiResults {
				if model.PartyKinds[k] {
					partyAI = append(partyAI, rec)
				} else {
					scalarAI[k] = rec
				}
			}
			mergeInputs.AI = scalarAI
			mergeInputs.Parties = collectPartyCandidates(schemaResult, partyAI)
			merged = merge.Merge(mergeInputs)
			applyMerged(record, merged)
			overall = weightedConfidence(record, e.Config.Fields)
			if strategy == model.StrategyRegexOnly {
				strategy = model.StrategyRegexPlusAI
			}
		}
	}

	// Step 6: judge invocation policy.
	aiFieldCount, regexSchemaFieldCount, aiCriticalCount := fieldSourceCounts(record, e.Config.Fields.Critical)
	if e.Config.Judge.Enabled && e.Judge != nil &&
		judge.ShouldInvoke(in.DocumentType, e.Config.Judge.HighValueDocTypes, overall,
			e.Config.Thresholds.Low, e.Config.Thresholds.MediumHigh, aiFieldCount, regexSchemaFieldCount, aiCriticalCount) {
		log.Info().Msg("invoking quality judge")
		record.Judgement = judge.Judge(ctx, e.Judge, judge.Request{
			Record:           record,
			Text:             text,
			ApproveThreshold: e.Config.Judge.ApproveThreshold,
			RejectThreshold:  e.Config.Judge.RejectThreshold,
			MaxTextChars:     e.Config.Judge.MaxTextChars,
			Deadline:         e.Config.Judge.Deadline,
		})
		record.State = model.StateJudged
	}
	if e.Config.Judge.AutoApplyCorrections {
		if corrected := ApplyCorrections(record); corrected != record {
			log.Info().Int("corrections_applied", len(corrected.CorrectionsApplied)).Msg("applied judge corrections")
			record = corrected
		}
	}

	// Step 7: final metadata.
	record.Metadata = model.Metadata{
		ProcessingTimeMS:  time.Since(start).Milliseconds(),
		RegexTimeMS:       regexTimeMS,
		AITimeMS:          aiTimeMS,
		RegexFieldCount:   regexSchemaFieldCount,
		SchemaFieldCount:  countBySource(record, model.MethodSchema) + countBySource(record, model.MethodSchemaTable),
		AIFieldCount:      aiFieldCount,
		TotalFieldCount:   totalFieldCount(record),
		RegexConfidence:   regexConfidence,
		OverallConfidence: overall,
		Strategy:          strategy,
		FieldSources:      fieldSources(record),
		AICalled:          aiCalled,
		AIReason:          aiReason,
		CatalogVersion:    e.Config.Versions.CatalogVersion,
		SchemaSetVersion:  e.Config.Versions.SchemaSetVersion,
	}
	if record.Judgement != nil {
		issues = append(issues, record.Judgement.Issues...)
	}
	record.Metadata.Issues = issues

	if e.Config.Cache.Enabled && e.Cache != nil {
		_ = cache.Store(ctx, e.Cache, cacheKey, record, e.Config.Cache.TTL)
	}

	log.Info().Int("overall_confidence", overall).Bool("ai_called", aiCalled).
		Dur("processing_time", time.Since(start)).Msg("extraction complete")
	return record, nil
}

func applyMerged(record *model.ExtractionRecord, merged merge.Output) {
	record.Fields = merged.Fields
	record.MultiFields = merged.MultiFields
	record.Parties = merged.Parties
}

// collectPartyCandidates gathers schema-produced and (when present)
// AI-produced party candidates under one kind-keyed map for C7.
func collectPartyCandidates(schemaResult schema.Result, aiParties []*model.FieldRecord) map[model.Kind][]*model.FieldRecord {
	out := make(map[model.Kind][]*model.FieldRecord)
	for k, rec := range schemaResult.Parties {
		out[k] = append(out[k], rec)
	}
	for _, rec := range aiParties {
		out[rec.Kind] = append(out[rec.Kind], rec)
	}
	return out
}
