/*
 * root.go, part of gmxff.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rmera/gmxff/top"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "GMXFF"

// config holds the settings that can come from flags, GMXFF_* variables
// or a gmxff.yaml file, in that order of precedence.
type config struct {
	Name         string `mapstructure:"name"`          //"" means the interchange's own name
	GroPrecision int    `mapstructure:"gro_precision"` //decimals for .gro positions
	LogLevel     string `mapstructure:"log_level"`
	Compression  string `mapstructure:"compression"` //"", "gz" or "zst", for default output names
}

// app is the state shared by the commands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config
	log     *zap.Logger
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("name", "")
	v.SetDefault("gro_precision", top.DefaultGroPrecision)
	v.SetDefault("log_level", "warn")
	v.SetDefault("compression", "")
	return v
}

// load reads the config file, if any, and fills a.cfg. Without an explicit
// file, gmxff.yaml in the working directory is used if it exists.
func (a *app) load() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", a.cfgFile, err)
		}
	} else {
		a.v.SetConfigName("gmxff")
		a.v.AddConfigPath(".")
		if err := a.v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return fmt.Errorf("reading config file: %w", err)
			}
		}
	}
	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	switch a.cfg.Compression {
	case "", "gz", "zst":
	default:
		return fmt.Errorf("unknown compression %q, use gz or zst", a.cfg.Compression)
	}
	if a.cfg.GroPrecision < 1 {
		return fmt.Errorf("gro precision must be positive, not %d", a.cfg.GroPrecision)
	}
	return nil
}

// newLogger returns a console logger to stderr with the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func newRootCommand() *cobra.Command {
	a := &app{v: newViper(), log: zap.NewNop()}
	cmd := &cobra.Command{
		Use:   "gmxff",
		Short: "Export parameterized interchange files to Gromacs",
		Long: "gmxff converts a force-field-parameterized system (an interchange file, in JSON or YAML,\n" +
			"optionally gzip or zstd compressed) into a Gromacs topology and coordinate file.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			l, err := newLogger(a.cfg.LogLevel)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./gmxff.yaml if present)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("log_level", pf.Lookup("log-level"))

	cmd.AddCommand(newExportCommand(a), newInspectCommand(a))
	return cmd
}
