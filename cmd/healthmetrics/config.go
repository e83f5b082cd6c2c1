package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "HEALTHMETRICS"
	configFileName = "healthmetrics"
	configFileType = "yaml"

	cfgKeyCatalogs = "catalogs"
	cfgKeyAddr     = "addr"
	cfgKeyLogLevel = "log_level"

	defaultAddr     = ":8080"
	defaultLogLevel = "info"
)

// loadConfig resolves settings from flags, HEALTHMETRICS_* environment
// variables and a YAML config file, in that order of precedence. When path
// is empty ./healthmetrics.yaml is read if it exists; a missing default file
// is not an error.
func loadConfig(path string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyAddr, defaultAddr)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyCatalogs, []string{})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		cfgKeyCatalogs: "catalog",
		cfgKeyAddr:     "addr",
		cfgKeyLogLevel: "log-level",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// splitList flattens comma separated entries. Viper splits a list read from
// the environment on whitespace only, so HEALTHMETRICS_CATALOGS=a.yaml,b.json
// arrives as one entry.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
