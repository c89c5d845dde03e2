// internal/game/rules.go
package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HouseRules holds the tunable amounts of a match. Board layout and cards are fixed.
type HouseRules struct {
	StartingCash             int   `json:"startingCash" yaml:"startingCash"`                         // cash each player starts with
	GoCash                   int   `json:"goCash" yaml:"goCash"`                                     // paid for passing or landing on Go
	IncomeTax                int   `json:"incomeTax" yaml:"incomeTax"`                               // flat income tax
	LuxuryTax                int   `json:"luxuryTax" yaml:"luxuryTax"`                               // flat luxury tax
	JailFine                 int   `json:"jailFine" yaml:"jailFine"`                                 // fine to leave jail
	MaxJailTurns             int   `json:"maxJailTurns" yaml:"maxJailTurns"`                         // failed rolls before the fine is forced
	BankHouses               int   `json:"bankHouses" yaml:"bankHouses"`                             // houses in the bank
	BankHotels               int   `json:"bankHotels" yaml:"bankHotels"`                             // hotels in the bank
	DoubleRentOnRailroadCard bool  `json:"doubleRentOnRailroadCard" yaml:"doubleRentOnRailroadCard"` // nearest-railroad card doubles rent
	Seed                     int64 `json:"seed" yaml:"seed"`                                         // deck and dice seed; 0 picks one at start
}

// DefaultHouseRules returns the standard rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		StartingCash:             1500,
		GoCash:                   200,
		IncomeTax:                200,
		LuxuryTax:                100,
		JailFine:                 50,
		MaxJailTurns:             3,
		BankHouses:               32,
		BankHotels:               12,
		DoubleRentOnRailroadCard: true,
	}
}

// Update will update the house rules with the new rules provided.
// If a rule is not set or defined, it will be ignored, and the old value will persist.
func (rules *HouseRules) Update(newRules map[string]interface{}) error {
	var ok bool

	assignBool := func(field *bool, key string) error {
		if val, exists := newRules[key]; exists && val != nil {
			*field, ok = val.(bool)
			if !ok {
				return fmt.Errorf("invalid type for %s", key)
			}
		}
		return nil
	}

	assignInt := func(field *int, key string, minVal int) error {
		if val, exists := newRules[key]; exists && val != nil {
			// JSON numbers decode as float64
			switch v := val.(type) {
			case float64:
				*field = int(v)
			case int:
				*field = v
			default:
				return fmt.Errorf("invalid type for %s", key)
			}
			if *field < minVal {
				return fmt.Errorf("%s must be at least %d", key, minVal)
			}
		}
		return nil
	}

	ints := []struct {
		field *int
		key   string
		min   int
	}{
		{&rules.StartingCash, "startingCash", 0},
		{&rules.GoCash, "goCash", 0},
		{&rules.IncomeTax, "incomeTax", 0},
		{&rules.LuxuryTax, "luxuryTax", 0},
		{&rules.JailFine, "jailFine", 0},
		{&rules.MaxJailTurns, "maxJailTurns", 1},
		{&rules.BankHouses, "bankHouses", 0},
		{&rules.BankHotels, "bankHotels", 0},
	}
	for _, f := range ints {
		if err := assignInt(f.field, f.key, f.min); err != nil {
			return err
		}
	}
	if err := assignBool(&rules.DoubleRentOnRailroadCard, "doubleRentOnRailroadCard"); err != nil {
		return err
	}

	var seed int
	if err := assignInt(&seed, "seed", 0); err != nil {
		return err
	}
	if seed != 0 {
		rules.Seed = int64(seed)
	}
	return nil
}

// ParseRules converts a map of rules to a HouseRules struct. It will ensure the types are valid.
func ParseRules(rules map[string]interface{}, current HouseRules) (HouseRules, error) {
	houseRules := current
	err := houseRules.Update(rules)
	return houseRules, err
}

// LoadRules reads a YAML rules file over the defaults. An empty path returns the defaults.
func LoadRules(path string) (HouseRules, error) {
	rules := DefaultHouseRules()
	if path == "" {
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if rules.MaxJailTurns < 1 {
		return rules, fmt.Errorf("maxJailTurns must be at least 1")
	}
	return rules, nil
}
