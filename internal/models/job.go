package models

// JobPosting is one eligible listing assembled during a crawl.
// Title and Company are nil when none of their selectors matched.
type JobPosting struct {
	Title      *string  `json:"title"`
	Company    *string  `json:"company"`
	Experience string   `json:"experience"`
	Location   string   `json:"location"`
	Skills     []string `json:"skills"`
	Source     string   `json:"source"`
	ScrapedAt  string   `json:"scraped_at"`

	// DetailURL is kept out of the snapshot; notifications key on it.
	DetailURL string `json:"-"`
}

// Key identifies a posting across runs for notification dedup.
func (j JobPosting) Key() string {
	if j.DetailURL != "" {
		return j.DetailURL
	}
	return Deref(j.Title) + "|" + Deref(j.Company) + "|" + j.Location
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
