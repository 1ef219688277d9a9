package main

import (
	"encoding/json"
	"fmt"
	"io"

	"pix-credit-service/config"
	"pix-credit-service/pkg/brcode"

	"github.com/spf13/cobra"
)

// globalOpts are the flags shared by every subcommand.
type globalOpts struct {
	configPath   string
	jsonOutput   bool
	pixKey       string
	merchantName string
	merchantCity string
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	rootCmd := &cobra.Command{
		Use:           "pixctl",
		Short:         "pixctl - static PIX code toolkit for the credit service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./config.yaml, env PIXSVC_*)")
	pf.BoolVarP(&opts.jsonOutput, "json", "j", false, "output as JSON")
	pf.StringVar(&opts.pixKey, "pix-key", "", "merchant PIX key (overrides config)")
	pf.StringVar(&opts.merchantName, "merchant-name", "", "merchant name (overrides config)")
	pf.StringVar(&opts.merchantCity, "merchant-city", "", "merchant city (overrides config)")

	rootCmd.AddCommand(generateCmd(opts))
	rootCmd.AddCommand(regenerateCmd(opts))
	rootCmd.AddCommand(verifyCmd(opts))
	rootCmd.AddCommand(classifyCmd(opts))
	rootCmd.AddCommand(migrateCmd(opts))
	rootCmd.AddCommand(tokenCmd(opts))

	return rootCmd
}

func (o *globalOpts) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.pixKey != "" {
		cfg.Merchant.PixKey = o.pixKey
	}
	if o.merchantName != "" {
		cfg.Merchant.Name = o.merchantName
	}
	if o.merchantCity != "" {
		cfg.Merchant.City = o.merchantCity
	}
	return cfg, nil
}

func (o *globalOpts) builder() (*brcode.Builder, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	b, err := brcode.NewBuilder(cfg.Merchant.Profile())
	if err != nil {
		return nil, nil, err
	}
	return b, cfg, nil
}

// field is one labelled line of text output.
type field struct {
	key   string
	value string
}

// print writes v as indented JSON, or fields as aligned text.
func (o *globalOpts) print(w io.Writer, v any, fields []field) error {
	if o.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-15s %s\n", f.key+":", f.value); err != nil {
			return err
		}
	}
	return nil
}
