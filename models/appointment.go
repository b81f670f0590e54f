package models

import (
	"time"

	"github.com/google/uuid"
)

// CaseType classifies an appointment by the kind of legal case it belongs to.
type CaseType string

const (
	CaseFamily      CaseType = "Family"
	CaseAppeal      CaseType = "Appeal"
	CaseCriminal    CaseType = "Criminal"
	CaseTraffic     CaseType = "Traffic"
	CaseCivil       CaseType = "Civil"
	CaseRealEstate  CaseType = "RealEstate"
	CaseUrgent      CaseType = "Urgent"
	CaseMisdemeanor CaseType = "Misdemeanor"
	CaseFlagrante   CaseType = "Flagrante"
	CaseCommercial  CaseType = "Commercial"
	CaseOther       CaseType = "Other"
)

// CaseTypeLabels maps every case type to its Arabic display label. The labels
// are what end up in notifications, CSV rows and calendar events.
var CaseTypeLabels = map[CaseType]string{
	CaseFamily:      "أحوال شخصية",
	CaseAppeal:      "استئناف",
	CaseCriminal:    "جنايات",
	CaseTraffic:     "مرور",
	CaseCivil:       "مدني",
	CaseRealEstate:  "عقاري",
	CaseUrgent:      "استعجالي",
	CaseMisdemeanor: "جنحي",
	CaseFlagrante:   "تلبسي",
	CaseCommercial:  "تجارية",
	CaseOther:       "أخرى",
}

// Valid reports whether t is one of the known case types.
func (t CaseType) Valid() bool {
	_, ok := CaseTypeLabels[t]
	return ok
}

// Label returns the Arabic display label for t, falling back to the raw value
// for unknown types.
func (t CaseType) Label() string {
	if label, ok := CaseTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// CaseTypeFromLabel resolves an Arabic display label back to its case type.
// Used by the CSV import path.
func CaseTypeFromLabel(label string) (CaseType, bool) {
	for t, l := range CaseTypeLabels {
		if l == label {
			return t, true
		}
	}
	return "", false
}

// CaseGroup is a filter-UI grouping of related case types.
type CaseGroup struct {
	Label string     `json:"label"`
	Types []CaseType `json:"types"`
}

// CommercialGroupLabel identifies the group that is hidden unless the
// commercial-mode preference is on.
const CommercialGroupLabel = "قضايا الأعمال"

// CaseGroups is the static grouping configuration shown as filter chips.
var CaseGroups = []CaseGroup{
	{Label: "قضايا الأسرة", Types: []CaseType{CaseFamily}},
	{Label: "القضايا الزجرية والجنائية", Types: []CaseType{CaseCriminal, CaseMisdemeanor, CaseFlagrante, CaseTraffic}},
	{Label: "القضايا المدنية والعقارية", Types: []CaseType{CaseCivil, CaseRealEstate}},
	{Label: CommercialGroupLabel, Types: []CaseType{CaseCommercial}},
	{Label: "المساطر والاستعجالي", Types: []CaseType{CaseAppeal, CaseUrgent}},
	{Label: "أخرى", Types: []CaseType{CaseOther}},
}

// GroupByLabel looks up a case group by its display label.
func GroupByLabel(label string) (CaseGroup, bool) {
	for _, g := range CaseGroups {
		if g.Label == label {
			return g, true
		}
	}
	return CaseGroup{}, false
}

// VisibleCaseGroups returns the groups offered as filters, hiding the
// commercial group when commercial mode is off.
func VisibleCaseGroups(commercialMode bool) []CaseGroup {
	if commercialMode {
		return CaseGroups
	}
	groups := make([]CaseGroup, 0, len(CaseGroups))
	for _, g := range CaseGroups {
		if g.Label == CommercialGroupLabel {
			continue
		}
		groups = append(groups, g)
	}
	return groups
}

// DefaultDescription is stored when an appointment is saved with no notes.
const DefaultDescription = "لا توجد تفاصيل إضافية"

// Appointment is the sole persisted entity: one scheduled court session or
// legal procedure for a client.
type Appointment struct {
	ID          uuid.UUID `json:"id"`
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone,omitempty"`
	FileNumber  string    `json:"fileNumber,omitempty"`
	CaseType    CaseType  `json:"caseType"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Archived    bool      `json:"archived,omitempty"`
}
