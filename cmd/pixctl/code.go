package main

import (
	"errors"
	"fmt"
	"strconv"

	"pix-credit-service/pkg/brcode"

	"github.com/spf13/cobra"
)

type codeOutput struct {
	PixKey        string `json:"pix_key"`
	PixCode       string `json:"pix_code"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description,omitempty"`
	QRCodeURL     string `json:"qr_code_url,omitempty"`
}

func generateCmd(opts *globalOpts) *cobra.Command {
	var (
		amount      string
		description string
		withQR      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a new static PIX code for the merchant",
		Example: `  pixctl generate --amount 25.50
  pixctl generate --amount 10 --description "Pedido 42" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := parseAmount(amount)
			if err != nil {
				return err
			}
			b, cfg, err := opts.builder()
			if err != nil {
				return err
			}
			res, err := b.Generate(cents, brcode.FoldASCII(description))
			if err != nil {
				return err
			}
			return printCode(cmd, opts, res, withQR, cfg.QRCode.BaseURL)
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount in reais, e.g. 25.50 (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "payment description, up to 25 bytes")
	cmd.Flags().BoolVar(&withQR, "qr", false, "also print a QR code image URL")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func regenerateCmd(opts *globalOpts) *cobra.Command {
	var (
		amount        string
		description   string
		transactionID string
		withQR        bool
	)

	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Rebuild the code for a known transaction id",
		Long: `Rebuild a static PIX code from its stored inputs. The same amount,
description and transaction id always produce the same code. Use "***" as
the transaction id to issue a code without a reference.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := parseAmount(amount)
			if err != nil {
				return err
			}
			b, cfg, err := opts.builder()
			if err != nil {
				return err
			}
			res, err := b.Regenerate(cents, brcode.FoldASCII(description), transactionID)
			if err != nil {
				return err
			}
			return printCode(cmd, opts, res, withQR, cfg.QRCode.BaseURL)
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount in reais, e.g. 25.50 (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "payment description, up to 25 bytes")
	cmd.Flags().StringVarP(&transactionID, "txid", "t", "", "transaction id embedded in the code (required)")
	cmd.Flags().BoolVar(&withQR, "qr", false, "also print a QR code image URL")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("txid")

	return cmd
}

func verifyCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [code]",
		Short: "Check the checksum of a BR Code and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := brcode.Decode(args[0])
			if err != nil {
				return fmt.Errorf("invalid code: %w", err)
			}
			out := struct {
				PixKey        string `json:"pix_key"`
				Description   string `json:"description,omitempty"`
				Amount        int64  `json:"amount"`
				MerchantName  string `json:"merchant_name"`
				MerchantCity  string `json:"merchant_city"`
				TransactionID string `json:"transaction_id"`
				Checksum      string `json:"checksum"`
			}{p.PixKey, p.Description, p.Amount, p.MerchantName, p.MerchantCity, p.TransactionID, p.Checksum}

			amount := ""
			if p.Amount > 0 {
				amount = brcode.FormatAmount(p.Amount)
			}
			return opts.print(cmd.OutOrStdout(), out, []field{
				{"pix_key", p.PixKey},
				{"description", p.Description},
				{"amount", amount},
				{"merchant_name", p.MerchantName},
				{"merchant_city", p.MerchantCity},
				{"transaction_id", p.TransactionID},
				{"checksum", p.Checksum + " (ok)"},
			})
		},
	}
}

func classifyCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [key]",
		Short: "Report which kind of PIX key a string is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kt := brcode.Classify(args[0])
			out := struct {
				Key   string `json:"key"`
				Type  string `json:"type"`
				Valid bool   `json:"valid"`
			}{args[0], string(kt), kt != brcode.KeyTypeInvalid}

			if err := opts.print(cmd.OutOrStdout(), out, []field{{"key", args[0]}, {"type", string(kt)}}); err != nil {
				return err
			}
			if !out.Valid {
				return errors.New("not a valid PIX key")
			}
			return nil
		},
	}
}

func printCode(cmd *cobra.Command, opts *globalOpts, res *brcode.Result, withQR bool, qrBase string) error {
	out := codeOutput{
		PixKey:        res.PixKey,
		PixCode:       res.PixCode,
		TransactionID: res.TransactionID,
		Amount:        res.Amount,
		Description:   res.Description,
	}
	if withQR {
		out.QRCodeURL = brcode.QRCodeURL(qrBase, res.PixCode)
	}
	return opts.print(cmd.OutOrStdout(), out, []field{
		{"pix_key", out.PixKey},
		{"amount", brcode.FormatAmount(out.Amount)},
		{"description", out.Description},
		{"transaction_id", out.TransactionID},
		{"pix_code", out.PixCode},
		{"qr_code_url", out.QRCodeURL},
	})
}

func parseAmount(s string) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return brcode.AmountToCents(f)
}
