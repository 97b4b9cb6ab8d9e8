package model

// ObligationItem is a single discrete obligation derived from a DPDPA
// section. Items are immutable configuration; IDs are unique within a
// section and insertion order is significant.
type ObligationItem struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Checklist is the fixed, ordered set of obligations for one DPDPA section.
type Checklist struct {
	// Section is the display name, e.g. "Section 5 — Notice"
	Section string `json:"section" yaml:"section"`

	// Meaning is a plain-language explanation of what the section requires
	Meaning string `json:"meaning" yaml:"meaning"`

	// Version is a content hash of the items, used for oracle cache keying
	Version string `json:"version,omitempty" yaml:"-"`

	Items []ObligationItem `json:"items" yaml:"items"`
}

// Item returns the obligation with the given ID, or false if absent.
func (c Checklist) Item(id string) (ObligationItem, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ObligationItem{}, false
}
