// internal/game/rules_test.go
package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseRulesUpdate(t *testing.T) {
	rules := DefaultHouseRules()
	err := rules.Update(map[string]interface{}{
		"startingCash":             float64(2000),
		"jailFine":                 75,
		"doubleRentOnRailroadCard": false,
		"seed":                     float64(12),
	})
	require.NoError(t, err)
	assert.Equal(t, 2000, rules.StartingCash)
	assert.Equal(t, 75, rules.JailFine)
	assert.False(t, rules.DoubleRentOnRailroadCard)
	assert.Equal(t, int64(12), rules.Seed)
	assert.Equal(t, 200, rules.GoCash, "unset keys keep their value")

	_, err = ParseRules(map[string]interface{}{"goCash": "lots"}, rules)
	assert.Error(t, err)
	_, err = ParseRules(map[string]interface{}{"maxJailTurns": 0}, rules)
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultHouseRules(), rules)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("startingCash: 1000\nluxuryTax: 75\nseed: 9\n"), 0o600))
	rules, err = LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, rules.StartingCash)
	assert.Equal(t, 75, rules.LuxuryTax)
	assert.Equal(t, int64(9), rules.Seed)
	assert.Equal(t, 200, rules.IncomeTax)

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
