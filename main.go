// Package main implements faststruct, a code generator for struct boilerplate.
//
// faststruct reads the struct declarations of a package and generates:
//   - getters: one accessor per field
//   - setters: one Set* mutator per field
//   - builder: a FooBuilder with chainable field methods and a checked Build
//   - optional: a replacement struct whose field types are wrapped in *T
//     (or helpers.Option[T])
//
// Usage:
//
//	faststruct [flags] <package-dir> [<struct-name>...]
//
// Flags:
//
//	-o, --output <path>
//	    File receiving all generated code (default: <file>_faststruct.go next to each source file)
//	-p, --package <name>
//	    Package name of the output file (default: the source file's package)
//	-t, --transform <list>
//	    Transforms applied to the structs named on the command line
//	--getter-prefix, --getter-style, --setter-prefix, --optional-style
//	    Naming and shape of the generated members
//	--config <file>
//	    YAML file listing several jobs
//
// Structs can also select transforms with directives in their doc comment:
//
//	//go:generate go run github.com/ecordell/faststruct .
//
//	//faststruct:getters
//	//faststruct:setters
//	type Account struct {
//	    owner   string
//	    balance int64
//	    token   string `faststruct:"except"`
//	}
//
// Fields tagged `faststruct:"except"` are left out of every transform. The
// optional transform replaces the declaration, so its source must sit in a
// file excluded from the build:
//
//	//go:build faststruct
//
//	//faststruct:optional
//	type Patch struct {
//	    ID   string `faststruct:"except"`
//	    Name string
//	}
package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	job := NewJob()
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:          "faststruct [flags] <package-dir> [<struct-name>...]",
		Short:        "Generate getters, setters, builders and optional variants of Go structs",
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), verbose)

			jobs := []Job{job}
			if configPath != "" {
				cfg, err := LoadFileConfig(configPath)
				if err != nil {
					return err
				}
				jobs = cfg.Jobs
			} else {
				jobs[0].Dir = args[0]
				jobs[0].Structs = args[1:]
				if err := jobs[0].Validate(); err != nil {
					return err
				}
			}

			for _, j := range jobs {
				logger.Debug("running job", "dir", j.Dir, "structs", strings.Join(j.Structs, ","), "transforms", strings.Join(j.Transforms, ","))
				if err := Run(j, logger); err != nil {
					logger.Error("generation failed", "dir", j.Dir, "err", err)
					return err
				}
			}
			return nil
		},
	}

	bindJobFlags(cmd.Flags(), &job)
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file listing generation jobs")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every generated member")
	cmd.MarkFlagsMutuallyExclusive("config", "transform")
	cmd.MarkFlagsMutuallyExclusive("config", "output")

	return cmd
}

// bindJobFlags registers the flags that fill a Job; the job's current values
// are the flag defaults.
func bindJobFlags(fs *pflag.FlagSet, job *Job) {
	fs.StringVarP(&job.Output, "output", "o", job.Output, "File receiving all generated code (default: <file>_faststruct.go per source file)")
	fs.StringVarP(&job.Package, "package", "p", job.Package, "Package name of the output file")
	fs.StringSliceVarP(&job.Transforms, "transform", "t", job.Transforms, "Transforms for the named structs: getters, setters, optional, builder")
	fs.StringVar(&job.GetterPrefix, "getter-prefix", job.GetterPrefix, "Prefix of generated accessor names")
	fs.StringVar(&job.GetterStyle, "getter-style", job.GetterStyle, "Accessor return style: value or pointer")
	fs.StringVar(&job.SetterPrefix, "setter-prefix", job.SetterPrefix, "Prefix of generated mutator names")
	fs.StringVar(&job.OptionalStyle, "optional-style", job.OptionalStyle, "Optional container: pointer (*T) or option (helpers.Option[T])")
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "faststruct",
		Level:  level,
	})
}
