package domain

// well-known sections of the built-in feed table
const (
	SectionWorld = "world"
	SectionUS    = "us"
	SectionAI    = "ai"
)

// Source is a single news provider feed
type Source struct {
	Name string
	URL  string
}

// SectionFeeds is a section tag with its sources in processing order
type SectionFeeds struct {
	Section string
	Sources []Source
}

// FeedTable maps sections to their sources. It is built once from configuration
// and passed explicitly to the merge step, never modified afterwards.
type FeedTable []SectionFeeds

// Sources returns sources configured for the section, nil for unknown sections
func (t FeedTable) Sources(section string) []Source {
	for _, sf := range t {
		if sf.Section == section {
			return sf.Sources
		}
	}
	return nil
}

// Sections returns section names in table order
func (t FeedTable) Sections() []string {
	res := make([]string, 0, len(t))
	for _, sf := range t {
		res = append(res, sf.Section)
	}
	return res
}
