package extractor

import "pothen/internal/domain"

type sectionAnchor struct {
	phrase  string
	section domain.SectionType
}

// sectionAnchors is ordered by priority: when a line contains several
// phrases the earliest entry decides.
var sectionAnchors = []sectionAnchor{
	{"Έσοδα από κάθε πηγή", domain.SectionIncome},
	{"Μετοχές ημεδαπών", domain.SectionSecurity},
	{"ΕΠΕΝΔΥΤΗΣ", domain.SectionSecurity},
	{"Καταθέσεις σε τράπεζες", domain.SectionBankAccount},
	{anchorRealEstateTitle, domain.SectionRealEstate},
	{"Οχήματα", domain.SectionOther},
}

// Classifier maps section-title lines to the section they open.
// A Classifier is not safe for concurrent use; build one per document.
type Classifier struct {
	anchors tokenSet
}

// NewClassifier returns a classifier over the fixed section anchors.
func NewClassifier() *Classifier {
	phrases := make([]string, len(sectionAnchors))
	for i, a := range sectionAnchors {
		phrases[i] = a.phrase
	}
	return &Classifier{anchors: newTokenSet(phrases)}
}

// Classify reports the section opened by line, if line is a section anchor.
func (c *Classifier) Classify(line string) (domain.SectionType, bool) {
	idx, ok := c.anchors.first(line)
	if !ok {
		return domain.SectionNone, false
	}
	return sectionAnchors[idx].section, true
}
