package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// MatchRule assigns a category to transactions whose description matches
// a glob pattern.
type MatchRule struct {
	DefaultModel
	Profile     Profile   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ProfileID   uuid.UUID `gorm:"index"`
	Priority    uint
	Match       string
	Category    string
	SubCategory string
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	r.Category = strings.TrimSpace(r.Category)
	r.SubCategory = strings.TrimSpace(r.SubCategory)

	return nil
}

func (r *MatchRule) AfterSave(_ *gorm.DB) error {
	if r.Match == "" {
		return ErrMatchRuleMatchEmpty
	}

	if r.Category == "" {
		return ErrMatchRuleCategoryEmpty
	}

	return nil
}

// Matches reports whether the rule matches the description. Matching is
// case-insensitive.
func (r MatchRule) Matches(description string) bool {
	return glob.Glob(strings.ToLower(r.Match), strings.ToLower(description))
}

// MatchRulesFor returns the rules of a profile in priority order.
func MatchRulesFor(tx *gorm.DB, profileID uuid.UUID) ([]MatchRule, error) {
	var rules []MatchRule
	err := tx.Where(&MatchRule{ProfileID: profileID}).Order("priority asc, created_at asc").Find(&rules).Error
	return rules, err
}

// Categorize sets the category of a transaction without one from the first
// matching rule. It reports whether a rule was applied.
func Categorize(rules []MatchRule, t *Transaction) bool {
	if strings.TrimSpace(t.Category) != "" {
		return false
	}

	for _, r := range rules {
		if r.Matches(t.Description) {
			t.Category = r.Category
			t.SubCategory = r.SubCategory
			return true
		}
	}

	return false
}
