package model

// Input is the record the core consumes (§6 Input format). All fields are
// plain text; no HTML, no binary, no attachments.
type Input struct {
	SourceRef               string
	Subject                 string
	BodyText                string
	PDFText                 string
	SenderIdentity          string
	OriginalSenderIdentity  string
	CarrierHint             string
	DocumentType            string
}

// CombinedText concatenates the input's text fields the way every
// extractor scans them: subject first (so subject-region detection can
// work from a byte offset), then body, then PDF text.
func (in Input) CombinedText() string {
	if in.PDFText == "" {
		return in.Subject + "\n" + in.BodyText
	}
	return in.Subject + "\n" + in.BodyText + "\n" + in.PDFText
}

// SubjectRegion returns the [start,end) byte range of the subject within
// CombinedText(), used by C3 to tag regex_subject provenance.
func (in Input) SubjectRegion() (start, end int) {
	return 0, len(in.Subject)
}
