package templates

import "time"

type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Description string    `json:"description"`
	IsPremium   bool      `json:"isPremium"`
	IsActive    bool      `json:"isActive"`
	UsageCount  int       `json:"usageCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Defaults returns the built-in template catalog. The migration seeds the
// same rows; the memory repo starts from this set.
func Defaults() []Template {
	return []Template{
		{ID: "tpl-modern", Name: "modern", DisplayName: "Modern", Description: "Clean two-column layout with accent color", IsActive: true},
		{ID: "tpl-professional", Name: "professional", DisplayName: "Professional", Description: "Traditional single-column layout", IsActive: true},
		{ID: "tpl-creative", Name: "creative", DisplayName: "Creative", Description: "Bold typography with sidebar", IsPremium: true, IsActive: true},
		{ID: "tpl-ats", Name: "ats", DisplayName: "ATS Friendly", Description: "Plain formatting tuned for parsers", IsActive: true},
		{ID: "tpl-dark", Name: "dark", DisplayName: "Dark", Description: "Dark background with light text", IsPremium: true, IsActive: true},
	}
}
