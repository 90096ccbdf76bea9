package model

// UserPreferences holds a user's dietary profile collected during onboarding.
// The recipe generator feeds cuisine and restrictions into its prompt.
type UserPreferences struct {
	Name               string   `json:"name,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	DietType           string   `json:"diet_type,omitempty"`
	Cuisine            string   `json:"cuisine,omitempty"`
	Restrictions       string   `json:"restrictions,omitempty"`
	CookingSkillLevel  string   `json:"cooking_skill_level,omitempty"`
	OnboardingComplete bool     `json:"onboarding_complete"`
}
