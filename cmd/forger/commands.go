package main

import (
	"io"
	"strings"

	"github.com/saylorsolutions/blacksmith/cmd/forger/internal/tmpl"
	"github.com/saylorsolutions/blacksmith/cmd/internal"
	"github.com/saylorsolutions/blacksmith/pkg/crate"
	"github.com/saylorsolutions/blacksmith/pkg/forger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:   "forger",
		Short: "Hide strings from passive inspection with XOR screening and Base64",
		Long: `forger hides strings from passive inspection by screening them with an XOR key and Base64 encoding the result.

This is not encryption, this is obfuscation, and they are very different things!
Anyone with the key can reverse every operation, and the built-in key is shared by every copy of forger.

TEXT arguments may be given as "-" to read the text from stdin.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.bind(root.PersistentFlags())

	root.AddCommand(
		textCmd(opts, "mold", "Screen and Base64 encode TEXT", (*forger.Forger).Mold),
		textCmd(opts, "unmold", "Reverse mold", (*forger.Forger).Unmold),
		textCmd(opts, "forge", "Forge TEXT into framed fragments", (*forger.Forger).Forge),
		textCmd(opts, "unforge", "Reverse forge, accepting netstring or legacy framing", (*forger.Forger).Unforge),
		dismantleCmd(opts),
		genCmd(opts),
		crateCmd(opts),
	)
	return root
}

func readText(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func textCmd(opts *options, use, short string, op func(*forger.Forger, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " TEXT",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.forger()
			if err != nil {
				return err
			}
			text, err := readText(cmd, args[0])
			if err != nil {
				return err
			}
			result, err := op(f, text)
			if err != nil {
				return err
			}
			internal.Echo(cmd.OutOrStdout(), "%s", result)
			return nil
		},
	}
}

func dismantleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dismantle TEXT",
		Short: "Forge TEXT and verify that it unforges to the same value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.forger()
			if err != nil {
				return err
			}
			text, err := readText(cmd, args[0])
			if err != nil {
				return err
			}
			report, err := f.Dismantle(text)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			internal.Echo(out, "Before => %s", report.Before)
			internal.Echo(out, "Forged => %s", report.Forged)
			internal.Echo(out, "Check  => %t", report.Check)
			return nil
		},
	}
}

func genCmd(opts *options) *cobra.Command {
	var (
		exposed   bool
		pkgName   string
		outputDir string
	)
	cmd := &cobra.Command{
		Use:   "gen FILE",
		Short: "Generate a Go file embedding the forged contents of FILE",
		Long: `gen generates a Go file embedding the forged contents of FILE, along with a function to unforge it. This pairs well with go:generate comments.
The name of the generated Go file will be based on the name of the input file, replacing characters that match the regex pattern [^a-zA-Z0-9_] with "_".
For example, given a file called super-secret.txt, a Go file will be created called super_secret_txt.go, containing a function called unforgeSuper_secret_txt.

The key is embedded in the generated file next to the forged data, so this only hides the data from passive binary analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.forger()
			if err != nil {
				return err
			}
			params := []tmpl.ParamOpt{
				tmpl.UseForger(f),
				tmpl.ExposeFunctions(exposed),
			}
			if len(outputDir) > 0 {
				params = append(params, tmpl.OutputDir(outputDir))
			}
			params = append(params, tmpl.PackageName(pkgName))
			target, err := tmpl.GenerateFile(args[0], params...)
			if err != nil {
				return err
			}
			internal.Echo(cmd.OutOrStdout(), "Generated %s", target)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&exposed, "exposed", "E", false, "Make the unforge function exposed from the file. It's recommended to only expose from within an internal package.")
	cmd.Flags().StringVarP(&pkgName, "package", "p", "", "Package name of the generated file, defaults to the name of the output directory.")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory to write the generated file to, defaults to the current directory.")
	return cmd
}

func crateCmd(opts *options) *cobra.Command {
	var (
		file     string
		sealPass string
	)
	cmd := &cobra.Command{
		Use:   "crate",
		Short: "Read and write forged values in a crate file",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "Path to the crate file (required)")
	cmd.PersistentFlags().StringVar(&sealPass, "seal", "", "Passphrase used to seal the crate file at rest")
	if err := cmd.MarkPersistentFlagRequired("file"); err != nil {
		panic(err)
	}

	open := func() (*crate.FileStore, *forger.Forger, error) {
		f, err := opts.forger()
		if err != nil {
			return nil, nil, err
		}
		var fileOpts []crate.FileOpt
		if len(sealPass) > 0 {
			fileOpts = append(fileOpts, crate.SealWith([]byte(sealPass), nil))
		}
		store, err := crate.OpenFileStore(file, fileOpts...)
		if err != nil {
			return nil, nil, err
		}
		return store, f, nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get KEY",
			Short: "Print the unforged value of KEY",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, f, err := open()
				if err != nil {
					return err
				}
				val, err := crate.NewForgedCrate(store, args[0], f).Value()
				if err != nil {
					return err
				}
				internal.Echo(cmd.OutOrStdout(), "%s", val)
				return nil
			},
		},
		&cobra.Command{
			Use:   "put KEY VALUE",
			Short: "Forge VALUE and store it as KEY",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, f, err := open()
				if err != nil {
					return err
				}
				val, err := readText(cmd, args[1])
				if err != nil {
					return err
				}
				return crate.NewForgedCrate(store, args[0], f).Set(val)
			},
		},
		&cobra.Command{
			Use:   "delete KEY",
			Short: "Remove KEY from the crate",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, f, err := open()
				if err != nil {
					return err
				}
				return crate.NewForgedCrate(store, args[0], f).Clear()
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the keys stored in the crate",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, _, err := open()
				if err != nil {
					return err
				}
				for _, key := range store.Keys() {
					internal.Echo(cmd.OutOrStdout(), "%s", key)
				}
				return nil
			},
		},
	)
	return cmd
}
