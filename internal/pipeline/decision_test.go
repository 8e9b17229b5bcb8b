package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlayer/extraction-engine/internal/config"
	"github.com/freightlayer/extraction-engine/internal/model"
)

func testFieldConfig() config.FieldConfig {
	return config.Default().Fields
}

func TestWeight_ClassifiesCriticalImportantAndOther(t *testing.T) {
	fields := testFieldConfig()
	assert.Equal(t, 3, weight(model.KindBookingNumber, fields))
	assert.Equal(t, 2, weight(model.KindVesselName, fields))
	assert.Equal(t, 1, weight(model.KindCommodityDescription, fields))
}

func TestWeightedConfidence_ComputesWeightedAverage(t *testing.T) {
	fields := testFieldConfig()
	record := model.NewExtractionRecord("msg-1")
	record.Fields[model.KindBookingNumber] = &model.FieldRecord{Confidence: 90} // weight 3
	record.Fields[model.KindVesselName] = &model.FieldRecord{Confidence: 60}    // weight 2
	record.Fields[model.KindCommodityDescription] = &model.FieldRecord{Confidence: 30} // weight 1

	// (90*3 + 60*2 + 30*1) / (3+2+1) = (270+120+30)/6 = 420/6 = 70
	assert.Equal(t, 70, weightedConfidence(record, fields))
}

func TestWeightedConfidence_EmptyRecordIsZero(t *testing.T) {
	record := model.NewExtractionRecord("msg-1")
	assert.Equal(t, 0, weightedConfidence(record, testFieldConfig()))
}

func newRecordWithCritical(record *model.ExtractionRecord, present int, total int, confidence int) {
	critical := testFieldConfig().Critical
	for i := 0; i < total; i++ {
		kind := model.Kind(critical[i])
		if i < present {
			record.Fields[kind] = &model.FieldRecord{Confidence: confidence}
		}
	}
}

func TestDecideAI_CriticalFieldsMissingTriggersCall(t *testing.T) {
	cfg := config.Default()
	record := model.NewExtractionRecord("msg-1")
	// 7 critical fields declared, none present -> missingOrWeakCritical=7 >= 3.
	gaps, reason, call := decideAI(record, 0, cfg)
	assert.True(t, call)
	assert.Equal(t, "critical_fields_missing", reason)
	assert.NotEmpty(t, gaps)
}

func TestDecideAI_PartyDemandingDocTypeTriggersCall(t *testing.T) {
	cfg := config.Default()
	record := model.NewExtractionRecord("msg-1")
	record.DocumentType = "hbl"
	// Fill in every critical/important field at high confidence so rule
	// (a) does not also fire, isolating rule (b).
	for _, c := range cfg.Fields.Critical {
		record.Fields[model.Kind(c)] = &model.FieldRecord{Confidence: 95}
	}
	for _, c := range cfg.Fields.Important {
		if model.PartyKinds[model.Kind(c)] {
			continue
		}
		record.Fields[model.Kind(c)] = &model.FieldRecord{Confidence: 95}
	}
	// Parties deliberately left absent.
	_, reason, call := decideAI(record, 95, cfg)
	assert.True(t, call)
	assert.Equal(t, "parties_required_missing", reason)
}

func TestDecideAI_OverallConfidenceLowTriggersCall(t *testing.T) {
	cfg := config.Default()
	record := model.NewExtractionRecord("msg-1")
	for _, c := range cfg.Fields.Critical {
		record.Fields[model.Kind(c)] = &model.FieldRecord{Confidence: 95}
	}
	for _, c := range cfg.Fields.Important {
		record.Fields[model.Kind(c)] = &model.FieldRecord{Confidence: 95}
	}
	record.Parties[model.KindShipper] = &model.FieldRecord{Confidence: 95}
	record.Parties[model.KindConsignee] = &model.FieldRecord{Confidence: 95}
	record.Parties[model.KindNotifyParty] = &model.FieldRecord{Confidence: 95}

	_, reason, call := decideAI(record, cfg.Thresholds.Medium-1, cfg)
	assert.True(t, call)
	assert.Equal(t, "overall_confidence_low", reason)
}

func TestDecideAI_FewGapsHighConfidenceSkipsCall(t *testing.T) {
	cfg := config.Default()
	record := model.NewExtractionRecord("msg-1")
	for _, c := range cfg.Fields.Critical {
		record.Fields[model.Kind(c)] = &model.FieldRecord{Confidence: 95}
	}
	for _, c := range cfg.Fields.Important {
		record.Fields[model.Kind(c)] = &model.FieldRecord{Confidence: 95}
	}
	record.Parties[model.KindShipper] = &model.FieldRecord{Confidence: 95}
	record.Parties[model.KindConsignee] = &model.FieldRecord{Confidence: 95}
	record.Parties[model.KindNotifyParty] = &model.FieldRecord{Confidence: 95}

	gaps, reason, call := decideAI(record, cfg.Thresholds.MediumHigh, cfg)
	assert.False(t, call)
	assert.Empty(t, reason)
	assert.Empty(t, gaps)
}

func TestFieldSourceCounts_SplitsAIFromRegexSchema(t *testing.T) {
	record := model.NewExtractionRecord("msg-1")
	record.Fields[model.KindBookingNumber] = &model.FieldRecord{Method: model.MethodAI}
	record.Fields[model.KindVesselName] = &model.FieldRecord{Method: model.MethodRegex}
	record.Parties[model.KindShipper] = &model.FieldRecord{Method: model.MethodSchema}

	aiCount, regexSchemaCount, aiCriticalCount := fieldSourceCounts(record, []string{"booking_number"})
	assert.Equal(t, 1, aiCount)
	assert.Equal(t, 2, regexSchemaCount)
	assert.Equal(t, 1, aiCriticalCount)
}

func TestCountBySource(t *testing.T) {
	record := model.NewExtractionRecord("msg-1")
	record.Fields[model.KindBookingNumber] = &model.FieldRecord{Method: model.MethodSchema}
	record.MultiFields[model.KindContainerNumber] = []*model.FieldRecord{
		{Method: model.MethodSchemaTable}, {Method: model.MethodRegex},
	}
	assert.Equal(t, 1, countBySource(record, model.MethodSchema))
	assert.Equal(t, 1, countBySource(record, model.MethodSchemaTable))
	assert.Equal(t, 1, countBySource(record, model.MethodRegex))
}

func TestTotalFieldCount(t *testing.T) {
	record := model.NewExtractionRecord("msg-1")
	record.Fields[model.KindBookingNumber] = &model.FieldRecord{}
	record.Parties[model.KindShipper] = &model.FieldRecord{}
	record.MultiFields[model.KindContainerNumber] = []*model.FieldRecord{{}, {}}
	require.Equal(t, 4, totalFieldCount(record))
}
