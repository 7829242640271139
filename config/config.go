package config

import (
	"os"
	"fmt"
	"gopkg.in/yaml.v3"

	"steglsb/stegano/img"
	"steglsb/stegano/lsb"
	"steglsb/util"
)

/*
 * Configuration for steganography. The same values must be used to hide
 * and to reveal a payload.
 */
type SteganoConfig struct {
	LSBMode		uint8		`yaml:"lsb_mode"`	// low bits per channel, 1 or 2
	UseAlpha	bool		`yaml:"use_alpha"`	// alpha channel carries data too
	Framed		bool		`yaml:"framed"`		// prepend payload with its length
}

type FullConfig struct {
	StegConfig	SteganoConfig		`yaml:"steganography_config"`
	Logger		util.LoggerInfo		`yaml:"logger_config"`
}

func DefaultConfig() *FullConfig {
	return &FullConfig{
		StegConfig: SteganoConfig{
			LSBMode: 1,
			UseAlpha: false,
			Framed: true,
		},
		Logger: util.LoggerInfo{
			IsColored: true,
			Mode: util.Error | util.Warning | util.Info,
		},
	}
}

func(s *SteganoConfig) Validate() error {
	if !lsb.Mode( s.LSBMode ).Valid() {
		return fmt.Errorf("%w: lsb_mode %d, must be 1 or 2", lsb.ErrInvalidParameter, s.LSBMode)
	}
	return nil
}

func(s *SteganoConfig) Options() img.Options {
	return img.Options{
		Mode: lsb.Mode( s.LSBMode ),
		Alpha: s.UseAlpha,
		Framed: s.Framed,
	}
}

/*
 * Functions for loading and saving configuration in YAML format.
 * Missing fields keep their default values.
 */
func LoadConfig( filename string ) (*FullConfig, error) {
	data, err := os.ReadFile( filename )
	if err != nil {
		return nil, err
	}

	conf := DefaultConfig()
	if err := yaml.Unmarshal( data, conf ); err != nil {
		return nil, err
	}
	if err := conf.StegConfig.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func SaveConfig( filename string, c *FullConfig ) error {
	data, err := yaml.Marshal( *c )
	if err != nil {
		return err
	}
	return os.WriteFile( filename, data, 0600 )
}
