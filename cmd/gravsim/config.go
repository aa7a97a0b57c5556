package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config mirrors §6's simulation-request record, tagged the way the
// teacher's simulation.go Config tags its Domain/Log/Behaviour/Algorithm
// fields for YAML unmarshalling.
type Config struct {
	System      string  `yaml:"system" mapstructure:"system"`
	Integrator  string  `yaml:"integrator" mapstructure:"integrator"`
	Tf          float64 `yaml:"tf" mapstructure:"tf"`
	Dt          float64 `yaml:"dt" mapstructure:"dt"`
	Tolerance   float64 `yaml:"tolerance" mapstructure:"tolerance"`
	StoreEveryN int     `yaml:"store_every_n" mapstructure:"store_every_n"`
	Custom      string  `yaml:"custom" mapstructure:"custom"`
	Out         string  `yaml:"out" mapstructure:"out"`
}

// bindRunFlags registers the `run` command's flags and binds them into v,
// so a value may come from either the flag or a loaded YAML file, flags
// taking precedence per Viper's usual resolution order.
func bindRunFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()
	flags.String("system", "circular_binary_orbit", "preset system name, or \"custom\"")
	flags.String("integrator", "ias15", "integrator scheme")
	flags.Float64("tf", 365.25, "integration horizon, days")
	flags.Float64("dt", 0, "fixed step size, days (fixed-step schemes only)")
	flags.Float64("tolerance", 1e-12, "local error tolerance (adaptive schemes only)")
	flags.Int("store-every-n", 1, "keep every Nth accepted step")
	flags.String("custom", "", "path to a custom-system CSV file (with --system=custom)")
	flags.String("out", "", "result file path; empty means stdout")
	flags.String("config", "", "optional YAML config file overriding the flag defaults")
	flags.Bool("quiet", false, "suppress progress reporting on stderr")

	v.BindPFlag("system", flags.Lookup("system"))
	v.BindPFlag("integrator", flags.Lookup("integrator"))
	v.BindPFlag("tf", flags.Lookup("tf"))
	v.BindPFlag("dt", flags.Lookup("dt"))
	v.BindPFlag("tolerance", flags.Lookup("tolerance"))
	v.BindPFlag("store_every_n", flags.Lookup("store-every-n"))
	v.BindPFlag("custom", flags.Lookup("custom"))
	v.BindPFlag("out", flags.Lookup("out"))

	v.SetEnvPrefix("gravsim")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) (Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
