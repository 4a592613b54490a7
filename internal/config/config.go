// Copyright 2024 The schemaforge Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads a yang.CompileOptions from a config file and/or
// environment variables, for hosts that want to drive the compiler
// without writing Go code. The core compiler package never imports
// viper itself; this package is the only place that translation
// happens, grounded on the avular-robotics-avular-packages CLI's
// initConfig (viper.SetEnvPrefix/AutomaticEnv/ReadInConfig pattern).
package config

import (
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/viper"

	"github.com/schemaforge/yangc/pkg/yang"
)

const envPrefix = "YANGC"

// Load reads compiler options from configFile if non-empty, otherwise
// from a "yangc.yaml"/"yangc.json"/etc. discovered on the search paths
// below, plus any YANGC_-prefixed environment variable overrides, and
// returns the resulting yang.CompileOptions.
func Load(configFile string) (yang.CompileOptions, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return yang.CompileOptions{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
	} else {
		v.SetConfigName("yangc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/yangc")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return yang.CompileOptions{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("failed to read config file").
					WithCause(err)
			}
		}
	}

	return FromViper(v), nil
}

// FromViper builds a yang.CompileOptions out of an already-populated
// viper instance, for hosts that manage their own viper lifecycle
// (flag binding, multiple config layers) and just want the compiler's
// slice of it.
func FromViper(v *viper.Viper) yang.CompileOptions {
	opts := yang.CompileOptions{
		SearchPaths:      v.GetStringSlice("search_paths"),
		DeviationModules: v.GetStringSlice("deviation_modules"),
		Plugins:          v.GetStringSlice("plugins"),
	}

	overrides := v.GetStringMap("feature_overrides")
	if len(overrides) > 0 {
		opts.FeatureOverrides = make(map[string]yang.TriState, len(overrides))
		for name, val := range overrides {
			opts.FeatureOverrides[name] = triStateOf(val)
		}
	}
	return opts
}

// triStateOf interprets a decoded config value (bool, or the strings
// "true"/"false"/"unset") as a yang.TriState; anything else is treated
// as TSUnset. Unlike yang.triStateOf, which returns an error for a
// malformed tri-state value, this never fails.
func triStateOf(v interface{}) yang.TriState {
	switch t := v.(type) {
	case bool:
		if t {
			return yang.TSTrue
		}
		return yang.TSFalse
	case string:
		switch strings.ToLower(t) {
		case "true":
			return yang.TSTrue
		case "false":
			return yang.TSFalse
		}
	}
	return yang.TSUnset
}
