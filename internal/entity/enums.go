package entity

type LeadSegment string

const (
	SegmentInterestedWebsite LeadSegment = "interested-website"
	SegmentDomainOnly        LeadSegment = "domain-only"
	SegmentColdLead          LeadSegment = "cold-lead"
	SegmentEmailPlans        LeadSegment = "email-plans"
)

var LeadSegments = []LeadSegment{SegmentInterestedWebsite, SegmentDomainOnly, SegmentColdLead, SegmentEmailPlans}

func (s LeadSegment) IsValid() bool { return contains(LeadSegments, s) }

type LeadSource string

const (
	SourceFacebook  LeadSource = "facebook"
	SourceGoogle    LeadSource = "google"
	SourceReferral  LeadSource = "referral"
	SourceWebsite   LeadSource = "website"
	SourceInstagram LeadSource = "instagram"
)

var LeadSources = []LeadSource{SourceFacebook, SourceGoogle, SourceReferral, SourceWebsite, SourceInstagram}

func (s LeadSource) IsValid() bool { return contains(LeadSources, s) }

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
)

var LeadStatuses = []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted}

func (s LeadStatus) IsValid() bool { return contains(LeadStatuses, s) }

type InteractionType string

const (
	InteractionCall     InteractionType = "call"
	InteractionEmail    InteractionType = "email"
	InteractionWhatsApp InteractionType = "whatsapp"
	InteractionMeeting  InteractionType = "meeting"
)

// DealStage is the pipeline position of a deal. Order of DealStages is the
// pipeline column order.
type DealStage string

const (
	StageNewLead     DealStage = "new-lead"
	StageContacted   DealStage = "contacted"
	StageQuoteSent   DealStage = "quote-sent"
	StageNegotiation DealStage = "negotiation"
	StageClosedWon   DealStage = "closed-won"
	StageClosedLost  DealStage = "closed-lost"
)

var DealStages = []DealStage{StageNewLead, StageContacted, StageQuoteSent, StageNegotiation, StageClosedWon, StageClosedLost}

func (s DealStage) IsValid() bool { return contains(DealStages, s) }

// IsOpen reports whether the deal is still being worked.
func (s DealStage) IsOpen() bool {
	return s != StageClosedWon && s != StageClosedLost
}

type ProductCategory string

const (
	CategoryWebsite ProductCategory = "website"
	CategoryDomain  ProductCategory = "domain"
	CategoryEmail   ProductCategory = "email"
	CategoryHosting ProductCategory = "hosting"
)

var ProductCategories = []ProductCategory{CategoryWebsite, CategoryDomain, CategoryEmail, CategoryHosting}

func (c ProductCategory) IsValid() bool { return contains(ProductCategories, c) }

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

var InvoiceStatuses = []InvoiceStatus{InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue}

func (s InvoiceStatus) IsValid() bool { return contains(InvoiceStatuses, s) }

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
