// Package config defines the data structures for batch sizing runs and
// loads them from YAML configuration files.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration holds a batch of named load cases to size.
type Configuration struct {
	Cases []Case `mapstructure:"cases"`
}

// Case is one load case with its constraint thresholds.
type Case struct {
	Name                string  `mapstructure:"name"`
	AxialForce          float64 `mapstructure:"axialForce"`          // N
	BendingMoment       float64 `mapstructure:"bendingMoment"`       // N-m
	MinimumThickness    float64 `mapstructure:"minimumThickness"`    // mm
	MinimumSafetyMargin float64 `mapstructure:"minimumSafetyMargin"` // unitless
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration %s: %w", configPath, err)
	}

	var configuration Configuration
	if err := viper.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("failed to parse configuration %s: %w", configPath, err)
	}

	if len(configuration.Cases) == 0 {
		return nil, fmt.Errorf("configuration %s defines no load cases", configPath)
	}

	for i := range configuration.Cases {
		c := &configuration.Cases[i]
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		if c.MinimumThickness == 0 {
			c.MinimumThickness = 1
		}
	}

	return &configuration, nil
}
