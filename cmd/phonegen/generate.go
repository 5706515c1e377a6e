package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidleathers/placeholder-numbers/internal/domain/values"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/clipboard"
	"github.com/davidleathers/placeholder-numbers/internal/service/generator"
)

type generateOptions struct {
	quantity int
	areaCode string
	format   string
	copy     bool
	json     bool
}

type generateOutput struct {
	SessionID      string                  `json:"session_id"`
	Count          int                     `json:"count"`
	ElapsedSeconds float64                 `json:"elapsed_seconds"`
	Fallbacks      int                     `json:"fallbacks"`
	Saved          bool                    `json:"saved"`
	Numbers        []values.PhoneCandidate `json:"numbers"`
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of unique phone numbers",
		Long:  "Generate a batch of phone numbers that were not produced earlier today.\n\nFormats:\n" + formatHelp(),
		Example: `  phonegen generate --quantity 10
  phonegen generate -q 5 --area-code 212 --format dashes --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.quantity, "quantity", "q", 10, "how many numbers to generate (1-50)")
	flags.StringVarP(&opts.areaCode, "area-code", "a", "", "fixed area code; random from the known list when empty")
	flags.StringVarP(&opts.format, "format", "f", values.FormatStandard,
		"output layout: "+strings.Join(values.SupportedNumberFormats(), ", "))
	flags.BoolVar(&opts.copy, "copy", false, "copy the numbers to the clipboard")
	flags.BoolVar(&opts.json, "json", false, "print the batch as JSON")

	return cmd
}

func formatHelp() string {
	var b strings.Builder
	for _, f := range values.SupportedNumberFormats() {
		fmt.Fprintf(&b, "  %-9s %s\n", f, values.NumberFormatExample(f))
	}
	return b.String()
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	a := root.app

	format, err := values.NewNumberFormat(opts.format)
	if err != nil {
		return reject(errOut, err)
	}

	result, err := a.generator.Generate(ctx, generator.GenerationConfig{
		Quantity: opts.quantity,
		AreaCode: strings.TrimSpace(opts.areaCode),
		Format:   format,
	})
	if err != nil {
		return reject(errOut, err)
	}

	if opts.json {
		if err := writeGenerateJSON(out, result); err != nil {
			return err
		}
	} else {
		session := a.generator.Session()
		for i, n := range result.Numbers {
			fmt.Fprintf(out, "%-16s #%d • %s • %s\n", n.Formatted(), i+1, n.AreaCode(), session.Short(6))
		}
		fmt.Fprintf(out, "Generated %d unique phone numbers in %.3fs\n", len(result.Numbers), result.Duration.Seconds())
	}

	if !result.Saved {
		fmt.Fprintln(errOut, "Warning: generated numbers were not saved; they may repeat after a restart")
	}

	if opts.copy {
		fallback := out
		if opts.json {
			fallback = errOut
		}
		copier := clipboard.NewCopier(root.clipboard, fallback, a.logger)

		copied, err := copier.Copy(strings.Join(result.Formatted(), "\n"))
		switch {
		case err != nil:
			fmt.Fprintf(errOut, "Warning: %v\n", err)
		case copied:
			fmt.Fprintf(errOut, "Copied %d phone numbers to clipboard\n", len(result.Numbers))
		}
	}

	return nil
}

func writeGenerateJSON(w io.Writer, result *generator.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(generateOutput{
		SessionID:      result.SessionID,
		Count:          len(result.Numbers),
		ElapsedSeconds: result.Duration.Seconds(),
		Fallbacks:      result.Fallbacks,
		Saved:          result.Saved,
		Numbers:        result.Numbers,
	})
}
