// Package content holds the site's domain state: portfolio projects,
// contact leads, hero copy, services, and site settings.
package content

// ProjectCategory is one of the three fixed portfolio categories.
type ProjectCategory string

const (
	CategorySocialDesign ProjectCategory = "تصميم سوشيال ميديا"
	CategoryVideoEditing ProjectCategory = "مونتاج فيديوهات"
	CategoryAdCampaigns  ProjectCategory = "إدارة حملات إعلانية"
)

// ProjectStatus tracks where a portfolio piece stands.
type ProjectStatus string

const (
	ProjectInProgress   ProjectStatus = "قيد التنفيذ"
	ProjectCompleted    ProjectStatus = "مكتمل"
	ProjectClientReview ProjectStatus = "مراجعة العميل"
	ProjectDraft        ProjectStatus = "مسودة"
)

// Project is a portfolio entry. JSON field names match the snapshots the
// site has always persisted.
type Project struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    ProjectCategory `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	Tools       []string        `json:"tools"`
	Status      ProjectStatus   `json:"status"`
	ClientName  string          `json:"clientName,omitempty"`
	Budget      string          `json:"budget,omitempty"`
	Deadline    string          `json:"deadline,omitempty"`
	Challenge   string          `json:"challenge,omitempty"`
	Solution    string          `json:"solution,omitempty"`
	Results     string          `json:"results,omitempty"`
}

// LeadStatus is the contact pipeline state. Any status is reachable from
// any other.
type LeadStatus string

const (
	LeadNew       LeadStatus = "جديد"
	LeadContacted LeadStatus = "تم التواصل"
	LeadAgreed    LeadStatus = "تم الاتفاق"
	LeadRejected  LeadStatus = "مرفوض"
)

// Lead is a contact-form submission.
type Lead struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Service string     `json:"service"`
	Message string     `json:"message"`
	Status  LeadStatus `json:"status"`
	Date    string     `json:"date"`
}

// HeroContent is the singleton headline record on the landing page. Title
// may carry inline markup.
type HeroContent struct {
	Tagline     string `json:"tagline"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// IconType labels which icon a service card renders.
type IconType string

const (
	IconDesign IconType = "design"
	IconVideo  IconType = "video"
	IconAds    IconType = "ads"
)

// Service is one of the three fixed service cards. The set is edited in
// place; cards are never added or removed.
type Service struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Desc     string   `json:"desc"`
	IconType IconType `json:"iconType"`
}

// SiteSettings is the singleton owner-facing configuration. AdminPassword
// is a plaintext comparison secret; the login gate reads it live, so
// changing it applies to the next login attempt.
type SiteSettings struct {
	AdminPassword string `json:"adminPassword"`
	TiktokURL     string `json:"tiktokUrl"`
	FacebookURL   string `json:"facebookUrl"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// ValidLeadStatus reports whether s is one of the four pipeline states.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadNew, LeadContacted, LeadAgreed, LeadRejected:
		return true
	}
	return false
}

// ValidCategory reports whether c is one of the fixed portfolio categories.
func ValidCategory(c ProjectCategory) bool {
	switch c {
	case CategorySocialDesign, CategoryVideoEditing, CategoryAdCampaigns:
		return true
	}
	return false
}
