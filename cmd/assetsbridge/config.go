package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"

	"github.com/clydemeng/assetsbridge/addressmap"
	"github.com/clydemeng/assetsbridge/ledger"
	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/clydemeng/assetsbridge/precompile/assetsfactory"
	"github.com/ethereum/go-ethereum/log"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

var configFileFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "TOML configuration file",
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, id, link)
	},
}

type bridgeConfig struct {
	Precompile assetsfactory.Config
	Runtime    precompile.RuntimeConfig
	AssetIDs   ledger.AssetIDConfig
	Ledger     ledger.Config
	Mapping    addressmap.Config
}

func defaultConfig() bridgeConfig {
	return bridgeConfig{
		Precompile: assetsfactory.DefaultConfig,
		Runtime:    precompile.DefaultRuntimeConfig,
		AssetIDs:   ledger.DefaultAssetIDConfig,
		Ledger:     ledger.DefaultConfig,
		Mapping:    addressmap.DefaultConfig,
	}
}

func loadConfig(file string, cfg *bridgeConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = decodeConfig(bufio.NewReader(f), cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

func decodeConfig(r io.Reader, cfg *bridgeConfig) error {
	return tomlSettings.NewDecoder(r).Decode(cfg)
}

// makeConfig returns the defaults overlaid with the config file, if any.
func makeConfig(ctx *cli.Context) (bridgeConfig, error) {
	cfg := defaultConfig()
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config %s: %w", file, err)
		}
		log.Info("Loaded configuration", "file", file)
	}
	return cfg, nil
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}
