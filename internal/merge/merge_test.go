package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlayer/extraction-engine/internal/model"
)

func rec(kind model.Kind, text string, confidence int, method model.Method, spanStart int) *model.FieldRecord {
	return &model.FieldRecord{
		Kind:       kind,
		Value:      model.FieldValue{Text: text},
		Confidence: confidence,
		Method:     method,
		SpanStart:  spanStart,
	}
}

// TestMerge_SchemaBeatsRegexOnConfidenceTie grounds §3 invariant 4's
// source-priority ordering: schema > regex_subject > regex > ai, applied
// only when confidence ties.
func TestMerge_SchemaBeatsRegexOnConfidenceTie(t *testing.T) {
	schemaRec := rec(model.KindBookingNumber, "BKG1", 90, model.MethodSchema, 50)
	regexRec := rec(model.KindBookingNumber, "BKG1", 90, model.MethodRegex, 10)

	out := Merge(Inputs{
		Regex:  map[model.Kind][]*model.FieldRecord{model.KindBookingNumber: {regexRec}},
		Schema: map[model.Kind][]*model.FieldRecord{model.KindBookingNumber: {schemaRec}},
	})

	winner := out.Fields[model.KindBookingNumber]
	require.NotNil(t, winner)
	assert.Equal(t, model.MethodSchema, winner.Method)
}

func TestMerge_RegexSubjectBeatsRegexOnTie(t *testing.T) {
	subjectRec := rec(model.KindBookingNumber, "BKG1", 85, model.MethodRegexSubject, 5)
	regexRec := rec(model.KindBookingNumber, "BKG1", 85, model.MethodRegex, 1)

	out := Merge(Inputs{
		Regex: map[model.Kind][]*model.FieldRecord{
			model.KindBookingNumber: {subjectRec, regexRec},
		},
	})

	winner := out.Fields[model.KindBookingNumber]
	require.NotNil(t, winner)
	assert.Equal(t, model.MethodRegexSubject, winner.Method)
}

func TestMerge_HighestConfidenceWinsRegardlessOfMethod(t *testing.T) {
	aiRec := rec(model.KindBookingNumber, "BKG1", 95, model.MethodAI, 0)
	regexRec := rec(model.KindBookingNumber, "BKG2", 60, model.MethodRegex, 0)

	out := Merge(Inputs{
		Regex: map[model.Kind][]*model.FieldRecord{model.KindBookingNumber: {regexRec}},
		AI:    map[model.Kind]*model.FieldRecord{model.KindBookingNumber: aiRec},
	})

	winner := out.Fields[model.KindBookingNumber]
	require.NotNil(t, winner)
	assert.Equal(t, "BKG1", winner.Value.Text)
}

// TestMerge_EarliestSpanBreaksFinalTie grounds the last tie-break rule:
// when confidence and method both tie, the earliest span wins.
func TestMerge_EarliestSpanBreaksFinalTie(t *testing.T) {
	late := rec(model.KindBookingNumber, "BKG1", 80, model.MethodRegex, 40)
	early := rec(model.KindBookingNumber, "BKG1", 80, model.MethodRegex, 5)

	out := Merge(Inputs{
		Regex: map[model.Kind][]*model.FieldRecord{model.KindBookingNumber: {late, early}},
	})

	winner := out.Fields[model.KindBookingNumber]
	require.NotNil(t, winner)
	assert.Equal(t, 5, winner.SpanStart)
}

// TestMerge_MultiValuedKindKeepsFullUnion grounds §3 invariant 5: a
// multi-valued kind (e.g. container_number) retains every distinct
// canonical value instead of collapsing to one winner.
func TestMerge_MultiValuedKindKeepsFullUnion(t *testing.T) {
	c1 := rec(model.KindContainerNumber, "MSCU1234566", 95, model.MethodRegex, 0)
	c2 := rec(model.KindContainerNumber, "CSQU3054383", 90, model.MethodRegex, 30)

	out := Merge(Inputs{
		Regex: map[model.Kind][]*model.FieldRecord{
			model.KindContainerNumber: {c1, c2},
		},
	})

	assert.Len(t, out.MultiFields[model.KindContainerNumber], 2)
	assert.Empty(t, out.Fields[model.KindContainerNumber])
}

// TestMerge_DedupesDuplicateCanonicalValues grounds the dedup side of
// merge: two candidates resolving to the same canonical value collapse
// into the higher-confidence one.
func TestMerge_DedupesDuplicateCanonicalValues(t *testing.T) {
	low := rec(model.KindContainerNumber, "MSCU1234566", 70, model.MethodRegex, 0)
	high := rec(model.KindContainerNumber, "MSCU1234566", 95, model.MethodSchema, 0)

	out := Merge(Inputs{
		Regex:  map[model.Kind][]*model.FieldRecord{model.KindContainerNumber: {low}},
		Schema: map[model.Kind][]*model.FieldRecord{model.KindContainerNumber: {high}},
	})

	recs := out.MultiFields[model.KindContainerNumber]
	require.Len(t, recs, 1)
	assert.Equal(t, 95, recs[0].Confidence)
}

func TestMerge_PartiesPickBestCandidate(t *testing.T) {
	weak := rec(model.KindShipper, "Acme Co", 70, model.MethodRegex, 0)
	strong := rec(model.KindShipper, "Acme Trading Co", 90, model.MethodSchema, 0)

	out := Merge(Inputs{
		Parties: map[model.Kind][]*model.FieldRecord{
			model.KindShipper: {weak, strong},
		},
	})

	winner := out.Parties[model.KindShipper]
	require.NotNil(t, winner)
	assert.Equal(t, "Acme Trading Co", winner.Value.Text)
}

func TestMerge_EmptyInputsProduceEmptyOutput(t *testing.T) {
	out := Merge(Inputs{})
	assert.Empty(t, out.Fields)
	assert.Empty(t, out.MultiFields)
	assert.Empty(t, out.Parties)
}
