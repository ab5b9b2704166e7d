package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRulesFromFileOverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
tags:
  - tag: tea
    keywords: [chai, tea]
occasion_bonuses:
  - occasion: Pongal
    tags: [traditional]
    bonus: 0.25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := LoadRulesFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []TagRule{{Tag: "tea", Keywords: []string{"chai", "tea"}}}, rules.Tags)
	assert.Equal(t, []OccasionBonus{{Occasion: "Pongal", Tags: []string{"traditional"}, Bonus: 0.25}}, rules.OccasionBonuses)
	assert.Equal(t, DefaultRules().Stores, rules.Stores)
	assert.Equal(t, DefaultRules().PersonalityBonuses, rules.PersonalityBonuses)

	c := NewTagClassifier(rules.Tags)
	assert.Equal(t, []string{"tea"}, c.Classify("Masala Chai Box", ""))
}

func TestLoadRulesFromFileErrorsKeepDefaults(t *testing.T) {
	rules, err := LoadRulesFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Equal(t, DefaultRules(), rules)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tags: [unclosed"), 0o600))
	rules, err = LoadRulesFromFile(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultRules(), rules)
}
