package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/scannorm/internal/emit"
	"github.com/telhawk-systems/scannorm/pkg/adapter"
	"github.com/telhawk-systems/scannorm/pkg/adapter/builtin"
)

var (
	transformAdapter string
	transformMIME    string
	transformDefFile string
	transformOutput  string
	transformPublish bool
)

var transformCmd = &cobra.Command{
	Use:   "transform <file>",
	Short: "Normalize one scanner export",
	Long: `Transform runs a scanner export through the named adapter and prints
the schema-conformant record set. With --publish the result is also sent to
the configured NATS subject for downstream ingestion.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVarP(&transformAdapter, "adapter", "a", "", "adapter name (see 'scannorm adapters')")
	transformCmd.Flags().StringVarP(&transformMIME, "mime", "m", "", "declared MIME type of the input")
	transformCmd.Flags().StringVar(&transformDefFile, "adapter-file", "", "YAML adapter definition to use instead of a built-in")
	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "json", "output format: json, csv")
	transformCmd.Flags().BoolVar(&transformPublish, "publish", false, "publish the record set to NATS")
	transformCmd.MarkFlagRequired("mime")
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	a, err := resolveAdapter()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	result, err := a.Transform(cmd.Context(), raw, transformMIME)
	if err != nil {
		return err
	}

	switch transformOutput {
	case "csv":
		if err := result.Set.WriteCSV(cmd.OutOrStdout()); err != nil {
			return err
		}
	case "json":
		data, err := result.Set.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	default:
		return fmt.Errorf("unknown output format %q", transformOutput)
	}

	if result.DroppedEnum > 0 || result.DroppedExtraction > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "dropped %d rows (enum: %d, extraction: %d)\n",
			result.DroppedEnum+result.DroppedExtraction, result.DroppedEnum, result.DroppedExtraction)
	}

	if transformPublish {
		pub, err := emit.Connect(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			return err
		}
		defer pub.Close()
		if err := pub.Publish(cmd.Context(), a.Name, result); err != nil {
			return err
		}
	}
	return nil
}

func resolveAdapter() (*adapter.Adapter, error) {
	if transformDefFile != "" {
		raw, err := os.ReadFile(transformDefFile)
		if err != nil {
			return nil, fmt.Errorf("read adapter definition: %w", err)
		}
		return adapter.ParseDefinition(raw)
	}
	if transformAdapter == "" {
		return nil, fmt.Errorf("either --adapter or --adapter-file is required")
	}
	a := builtin.Registry().Get(transformAdapter)
	if a == nil {
		return nil, fmt.Errorf("unknown adapter %q", transformAdapter)
	}
	return a, nil
}
