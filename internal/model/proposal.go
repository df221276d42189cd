package model

// ProposalStatus represents the lifecycle state of a proposal.
type ProposalStatus string

const (
	ProposalOpen     ProposalStatus = "open"
	ProposalInReview ProposalStatus = "in-review"
	ProposalClosed   ProposalStatus = "closed"
)

// Role is the demo viewer role used to filter proposal listings.
type Role string

const (
	RoleCompany Role = "company"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Company identifies the organization that posted a proposal.
type Company struct {
	Name     string `json:"name" yaml:"name"`
	Industry string `json:"industry" yaml:"industry"`
}

// Budget is a proposal's funding range.
type Budget struct {
	Min      int    `json:"min" yaml:"min"`
	Max      int    `json:"max" yaml:"max"`
	Currency string `json:"currency" yaml:"currency"`
}

// MatchingCriteria are the thresholds and expertise terms a proposal matches
// researchers against.
type MatchingCriteria struct {
	MinHIndex             int      `json:"minHIndex" yaml:"minHIndex"`
	MinCitations          int      `json:"minCitations" yaml:"minCitations"`
	RequiredExpertise     []string `json:"requiredExpertise" yaml:"requiredExpertise"`
	PreferredInstitutions []string `json:"preferredInstitutions,omitempty" yaml:"preferredInstitutions,omitempty"`
}

// Proposal is a research collaboration proposal. Proposals are read-only
// fixtures for the lifetime of the process.
type Proposal struct {
	ID               string           `json:"id" yaml:"id"`
	Title            string           `json:"title" yaml:"title"`
	Company          Company          `json:"company" yaml:"company"`
	Description      string           `json:"description" yaml:"description"`
	ResearchArea     []string         `json:"researchArea" yaml:"researchArea"`
	Budget           Budget           `json:"budget" yaml:"budget"`
	Duration         string           `json:"duration" yaml:"duration"`
	Requirements     []string         `json:"requirements" yaml:"requirements"`
	Benefits         []string         `json:"benefits" yaml:"benefits"`
	Deadline         string           `json:"deadline" yaml:"deadline"`
	PostedDate       string           `json:"postedDate" yaml:"postedDate"`
	Status           ProposalStatus   `json:"status" yaml:"status"`
	MatchingCriteria MatchingCriteria `json:"matchingCriteria" yaml:"matchingCriteria"`
	ContactEmail     string           `json:"contactEmail" yaml:"contactEmail"`
}

// ProposalRef is the subset of a proposal returned alongside match results.
type ProposalRef struct {
	ID               string           `json:"id" yaml:"id"`
	Title            string           `json:"title" yaml:"title"`
	Company          Company          `json:"company" yaml:"company"`
	MatchingCriteria MatchingCriteria `json:"matchingCriteria" yaml:"matchingCriteria"`
}

// Ref returns the identity/context view of the proposal.
func (p Proposal) Ref() ProposalRef {
	return ProposalRef{
		ID:               p.ID,
		Title:            p.Title,
		Company:          p.Company,
		MatchingCriteria: p.MatchingCriteria,
	}
}

// MatchResult is a researcher annotated with a match score and the reasons
// behind it. Constructed fresh per scoring call.
type MatchResult struct {
	Researcher
	MatchScore   int      `json:"matchScore" yaml:"matchScore"`
	MatchReasons []string `json:"matchReasons" yaml:"matchReasons"`
}

// ScoredResearcher is a search hit annotated with its query relevance score.
type ScoredResearcher struct {
	Researcher
	MatchScore int `json:"matchScore" yaml:"matchScore"`
}
