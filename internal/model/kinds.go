// Package model holds the entity-kind tagged sum and the record types
// shared by every extraction component.
package model

// Kind identifies one of the closed set of entity kinds the engine
// recognizes. New kinds require a catalog version bump.
type Kind string

const (
	KindBookingNumber    Kind = "booking_number"
	KindBLNumber         Kind = "bl_number"
	KindMBLNumber        Kind = "mbl_number"
	KindHBLNumber        Kind = "hbl_number"
	KindContainerNumber  Kind = "container_number"
	KindSealNumber       Kind = "seal_number"
	KindEntryNumber      Kind = "entry_number"
	KindInTransitNumber  Kind = "in_transit_number"
	KindISFNumber        Kind = "isf_number"
	KindAMSNumber        Kind = "ams_number"
	KindHSCode           Kind = "hs_code"
	KindInvoiceNumber    Kind = "invoice_number"

	KindCarrier              Kind = "carrier"
	KindVesselName           Kind = "vessel_name"
	KindVoyageNumber         Kind = "voyage_number"
	KindPortOfLoading        Kind = "port_of_loading"
	KindPortOfLoadingCode    Kind = "port_of_loading_code"
	KindPortOfDischarge      Kind = "port_of_discharge"
	KindPortOfDischargeCode  Kind = "port_of_discharge_code"
	KindPlaceOfReceipt       Kind = "place_of_receipt"
	KindPlaceOfDelivery      Kind = "place_of_delivery"
	KindInlandLocation       Kind = "inland_location"

	KindETD                Kind = "etd"
	KindETA                Kind = "eta"
	KindSICutoff           Kind = "si_cutoff"
	KindVGMCutoff          Kind = "vgm_cutoff"
	KindCargoCutoff        Kind = "cargo_cutoff"
	KindGateCutoff         Kind = "gate_cutoff"
	KindDocCutoff          Kind = "doc_cutoff"
	KindShippedOnBoardDate Kind = "shipped_on_board_date"
	KindLastFreeDay        Kind = "last_free_day"
	KindFreeTimeDays       Kind = "free_time_days"

	KindCommodityDescription Kind = "commodity_description"
	KindPackageCount         Kind = "package_count"
	KindGrossWeight          Kind = "gross_weight"
	KindNetWeight            Kind = "net_weight"
	KindVolume               Kind = "volume"
	KindContainerType        Kind = "container_type"
	KindTemperature          Kind = "temperature"
	KindIncoterms            Kind = "incoterms"

	KindShipper            Kind = "shipper"
	KindConsignee          Kind = "consignee"
	KindNotifyParty        Kind = "notify_party"
	KindImporterOfRecord   Kind = "importer_of_record"
	KindBuyer              Kind = "buyer"
	KindSeller             Kind = "seller"
	KindManufacturer       Kind = "manufacturer"

	KindAmount          Kind = "amount"
	KindFreightTerms    Kind = "freight_terms"
	KindDemurrageRate   Kind = "demurrage_rate"
	KindStorageRate     Kind = "storage_rate"
)

// DateKinds is the closed set of kinds whose value is a calendar date.
var DateKinds = map[Kind]bool{
	KindETD: true, KindETA: true, KindSICutoff: true, KindVGMCutoff: true,
	KindCargoCutoff: true, KindGateCutoff: true, KindDocCutoff: true,
	KindShippedOnBoardDate: true, KindLastFreeDay: true,
}

// PartyKinds is the closed set of kinds whose value is a party block.
var PartyKinds = map[Kind]bool{
	KindShipper: true, KindConsignee: true, KindNotifyParty: true,
	KindImporterOfRecord: true, KindBuyer: true, KindSeller: true,
	KindManufacturer: true,
}

// MultiValuedKinds is the closed set of kinds that may carry more than one
// value per record (e.g. a list of container numbers on one booking).
var MultiValuedKinds = map[Kind]bool{
	KindContainerNumber: true, KindSealNumber: true, KindAmount: true,
}

// CriticalFields is the default set used by the orchestrator's weighted
// confidence calculation (weight 3).
var CriticalFields = []Kind{
	KindBookingNumber, KindBLNumber, KindContainerNumber,
	KindPortOfLoading, KindPortOfDischarge, KindETD, KindETA,
}

// ImportantFields is the default set used by the orchestrator's weighted
// confidence calculation (weight 2).
var ImportantFields = []Kind{
	KindVesselName, KindVoyageNumber, KindSICutoff, KindVGMCutoff,
	KindCargoCutoff, KindGateCutoff, KindShipper, KindConsignee,
}

// SenderCategory is the closed set of sender classifications C4 produces.
type SenderCategory string

const (
	SenderCarrier          SenderCategory = "carrier"
	SenderFreightForwarder SenderCategory = "freight_forwarder"
	SenderCustomsBroker    SenderCategory = "customs_broker"
	SenderTerminal         SenderCategory = "terminal"
	SenderTrucking         SenderCategory = "trucking"
	SenderRail             SenderCategory = "rail"
	SenderShipper          SenderCategory = "shipper"
	SenderConsignee        SenderCategory = "consignee"
	SenderInternalRelay    SenderCategory = "internal_relay"
	SenderOther            SenderCategory = "other"
)

// Method is the closed set of methods that can produce a field value.
type Method string

const (
	MethodRegex        Method = "regex"
	MethodRegexSubject Method = "regex_subject"
	MethodSchema       Method = "schema"
	MethodSchemaTable  Method = "schema_table"
	MethodAI           Method = "ai"
)

// methodPriority gives the source-priority ranking used by §3 invariant 4:
// schema > regex_subject > regex > ai. Lower is better.
var methodPriority = map[Method]int{
	MethodSchema:       0,
	MethodSchemaTable:  0,
	MethodRegexSubject: 1,
	MethodRegex:        2,
	MethodAI:           3,
}

// PreferredMethod returns true if a beats b under the source-priority
// ordering (used only to break exact confidence ties).
func PreferredMethod(a, b Method) bool {
	return methodPriority[a] < methodPriority[b]
}

// Verdict is the closed set of per-field quality verdicts C8 may issue.
type Verdict string

const (
	VerdictCorrect       Verdict = "correct"
	VerdictLikelyCorrect Verdict = "likely_correct"
	VerdictSuspicious    Verdict = "suspicious"
	VerdictIncorrect     Verdict = "incorrect"
	VerdictMissing       Verdict = "missing"
)

// IssueSeverity is the closed set of record-level issue severities.
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityWarning  IssueSeverity = "warning"
	SeverityInfo     IssueSeverity = "info"
)

// RecordVerdict is the closed set of terminal judge verdicts.
type RecordVerdict string

const (
	RecordApproved    RecordVerdict = "approved"
	RecordNeedsReview RecordVerdict = "needs_review"
	RecordRejected    RecordVerdict = "rejected"
)

// Strategy is the closed set of orchestration strategies recorded in
// metadata.
type Strategy string

const (
	StrategyRegexOnly   Strategy = "regex_only"
	StrategyRegexPlusAI Strategy = "regex_plus_ai"
	StrategyAIFallback  Strategy = "ai_fallback"
)

// RecordState is the one-way state machine of §3's Lifecycle section.
type RecordState string

const (
	StateCreated   RecordState = "created"
	StateJudged    RecordState = "judged"
	StateCorrected RecordState = "corrected"
)
