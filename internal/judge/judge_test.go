package judge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlayer/extraction-engine/internal/model"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64, deadline time.Duration) (string, error) {
	return f.reply, f.err
}

func TestShouldInvoke_HighValueDocType(t *testing.T) {
	assert.True(t, ShouldInvoke("customs_entry", []string{"customs_entry"}, 95, 40, 85, 0, 10, 0))
}

func TestShouldInvoke_MediumConfidenceBand(t *testing.T) {
	assert.True(t, ShouldInvoke("bill_of_lading", nil, 60, 40, 85, 0, 10, 0))
	assert.False(t, ShouldInvoke("bill_of_lading", nil, 95, 40, 85, 0, 10, 0))
	assert.False(t, ShouldInvoke("bill_of_lading", nil, 20, 40, 85, 0, 10, 0))
}

func TestShouldInvoke_AIOutweighsRegexAndSchema(t *testing.T) {
	assert.True(t, ShouldInvoke("bill_of_lading", nil, 95, 40, 85, 5, 2, 0))
	assert.False(t, ShouldInvoke("bill_of_lading", nil, 95, 40, 85, 2, 5, 0))
}

func TestShouldInvoke_TwoOrMoreCriticalAIFields(t *testing.T) {
	assert.True(t, ShouldInvoke("bill_of_lading", nil, 95, 40, 85, 0, 10, 2))
	assert.False(t, ShouldInvoke("bill_of_lading", nil, 95, 40, 85, 0, 10, 1))
}

func TestShouldInvoke_NoneOfTheRulesApply(t *testing.T) {
	assert.False(t, ShouldInvoke("bill_of_lading", []string{"customs_entry"}, 95, 40, 85, 0, 10, 0))
}

func newRecord() *model.ExtractionRecord {
	r := model.NewExtractionRecord("msg-1")
	r.Metadata.OverallConfidence = 72
	return r
}

func TestJudge_NilProviderReturnsFallback(t *testing.T) {
	j := Judge(context.Background(), nil, Request{Record: newRecord()})
	require.NotNil(t, j)
	assert.Equal(t, model.RecordNeedsReview, j.Verdict)
	assert.Equal(t, 72, j.Score)
}

func TestJudge_ProviderErrorReturnsFallback(t *testing.T) {
	p := &fakeProvider{err: assert.AnError}
	j := Judge(context.Background(), p, Request{Record: newRecord(), ApproveThreshold: 80, RejectThreshold: 40})
	assert.Equal(t, model.RecordNeedsReview, j.Verdict)
	assert.Equal(t, 72, j.Score)
}

func TestJudge_NonJSONReplyReturnsFallback(t *testing.T) {
	p := &fakeProvider{reply: "not json at all"}
	j := Judge(context.Background(), p, Request{Record: newRecord(), ApproveThreshold: 80, RejectThreshold: 40})
	assert.Equal(t, model.RecordNeedsReview, j.Verdict)
}

func TestJudge_HighScoreApproves(t *testing.T) {
	p := &fakeProvider{reply: `{"field_evaluations":[{"kind":"booking_number","verdict":"correct","reason":"matches source"}],"issues":[],"score":92}`}
	j := Judge(context.Background(), p, Request{Record: newRecord(), ApproveThreshold: 80, RejectThreshold: 40})
	require.NotNil(t, j)
	assert.Equal(t, model.RecordApproved, j.Verdict)
	assert.Equal(t, 92, j.Score)
	require.Len(t, j.FieldEvaluations, 1)
	assert.Equal(t, model.VerdictCorrect, j.FieldEvaluations[0].Verdict)
}

func TestJudge_LowScoreRejects(t *testing.T) {
	p := &fakeProvider{reply: `{"field_evaluations":[],"issues":[{"severity":"critical","field":"container_number","description":"not in source","impact":"fabrication"}],"score":10}`}
	j := Judge(context.Background(), p, Request{Record: newRecord(), ApproveThreshold: 80, RejectThreshold: 40})
	assert.Equal(t, model.RecordRejected, j.Verdict)
	require.Len(t, j.Issues, 1)
	assert.Equal(t, model.SeverityCritical, j.Issues[0].Severity)
}

func TestJudge_MidScoreNeedsReview(t *testing.T) {
	p := &fakeProvider{reply: `{"field_evaluations":[],"issues":[],"score":60}`}
	j := Judge(context.Background(), p, Request{Record: newRecord(), ApproveThreshold: 80, RejectThreshold: 40})
	assert.Equal(t, model.RecordNeedsReview, j.Verdict)
}

func TestJudge_ScoreClampedToRange(t *testing.T) {
	p := &fakeProvider{reply: `{"field_evaluations":[],"issues":[],"score":150}`}
	j := Judge(context.Background(), p, Request{Record: newRecord(), ApproveThreshold: 80, RejectThreshold: 40})
	assert.Equal(t, 100, j.Score)
	assert.Equal(t, model.RecordApproved, j.Verdict)
}

func TestJudge_ToleratesMarkdownCodeFence(t *testing.T) {
	p := &fakeProvider{reply: "```json\n{\"field_evaluations\":[],\"issues\":[],\"score\":88}\n```"}
	j := Judge(context.Background(), p, Request{Record: newRecord(), ApproveThreshold: 80, RejectThreshold: 40})
	assert.Equal(t, model.RecordApproved, j.Verdict)
	assert.Equal(t, 88, j.Score)
}
