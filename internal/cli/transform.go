package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/artpar/rawpayload/internal/payload"
)

// transformFunc rewrites a payload.
type transformFunc func(string) (string, error)

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	return newTransformCommand("format", "Pretty-print a JSON payload", payload.Format)
}

// NewMinifyCommand creates the minify command.
func NewMinifyCommand() *cobra.Command {
	return newTransformCommand("minify", "Strip insignificant whitespace from a JSON payload", payload.Minify)
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand() *cobra.Command {
	return newTransformCommand("encode", "Form URL-encode a payload", func(s string) (string, error) {
		return payload.Encode(s), nil
	})
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand() *cobra.Command {
	return newTransformCommand("decode", "Decode a form URL-encoded payload", payload.Decode)
}

func newTransformCommand(name, short string, fn transformFunc) *cobra.Command {
	return &cobra.Command{
		Use:          name + " [FILE]",
		Short:        short,
		Long:         short + ". Reads FILE, or stdin when FILE is omitted or \"-\".",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out, err := fn(input)
			if err != nil {
				return fmt.Errorf("%s failed: %w", name, err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

// readInput returns the payload from the file argument or stdin. A single
// trailing line break is dropped so shell input round-trips.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		content []byte
		err     error
	)
	if len(args) == 0 || args[0] == "-" {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read payload: %w", err)
	}

	s := string(content)
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// Classification is the classify command output.
type Classification struct {
	ContentType   string `yaml:"content_type"`
	EditorMode    string `yaml:"editor_mode"`
	IsFormEncoded bool   `yaml:"form_encoded"`
	IsJSON        bool   `yaml:"json"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "classify CONTENT_TYPE",
		Short:        "Show how a content type is treated by the editor",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := payload.Classify(args[0])
			c := Classification{
				ContentType:   args[0],
				EditorMode:    payload.EditorMode(args[0]),
				IsFormEncoded: flags.IsFormEncoded,
				IsJSON:        flags.IsJSON,
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(c)
		},
	}
}
