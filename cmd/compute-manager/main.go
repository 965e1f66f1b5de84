package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ncampost/compute-manager/internal/config"
	"github.com/ncampost/compute-manager/internal/envdefaults"
	"github.com/ncampost/compute-manager/internal/gce"
	"github.com/ncampost/compute-manager/internal/machine"
	"github.com/ncampost/compute-manager/internal/output"
)

var (
	version = "dev"
	commit  = "unknown"
)

// Global flag values
var (
	flagProject   string
	flagZone      string
	flagConfigDir string
	flagEnvFile   string
	flagVerbose   bool
)

// log is the process-wide logger entry; subcommand and invocation id
// fields are attached in the root PersistentPreRun.
var log = logrus.NewEntry(logrus.StandardLogger())

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "compute-manager",
	Short: "compute-manager - Compute Engine instance management tool",
	Long: `compute-manager is a CLI tool for managing Compute Engine instances
with simple per-instance YAML configuration.

Each instance has a directory under the configs root named after the
instance, containing a config.yml that declares the desired machine
shape (image family, machine type). Project and zone come from flags,
the env defaults file (prod.env), or GCP_PROJECT/GCP_ZONE.

Authentication uses Application Default Credentials.`,
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		log = logrus.WithFields(logrus.Fields{
			"command":    cmd.Name(),
			"invocation": uuid.NewString(),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProject, "project", "", "GCP project ID (default from env defaults file or GCP_PROJECT)")
	rootCmd.PersistentFlags().StringVar(&flagZone, "zone", "", "GCP zone (default from env defaults file or GCP_ZONE)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", config.DefaultConfigDir, "root directory of per-instance configs")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", envdefaults.DefaultEnvFile, "env defaults file supplying GCP_PROJECT/GCP_ZONE")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
}

// newManager resolves the target project/zone and builds a machine
// manager backed by a real Compute Engine client.
func newManager(ctx context.Context) (*machine.Manager, error) {
	target, err := envdefaults.Resolve(flagProject, flagZone, flagEnvFile)
	if err != nil {
		return nil, err
	}

	client, err := gce.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	return machine.NewManager(client, log, target), nil
}

var flagWait bool

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create the instance referred to by <name>",
	Long: `Create a Compute Engine instance from its configuration file.

The configuration is read from <config-dir>/<name>/config.yml and
declares the image family, machine type, and optional disk, network,
and scheduling settings. The boot disk is initialized from the latest
image in the configured family.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		ctx := context.Background()

		cfg, err := config.Load(flagConfigDir, name)
		if err != nil {
			return err
		}

		mgr, err := newManager(ctx)
		if err != nil {
			return err
		}

		op, err := mgr.Create(ctx, cfg, machine.CreateOptions{Wait: flagWait})
		if err != nil {
			return fmt.Errorf("failed to create instance: %w", err)
		}

		if !flagWait {
			fmt.Printf("Create requested; operation: %s\n", op.Name)
			return nil
		}

		fmt.Printf("✓ Instance %s created successfully!\n", cfg.Name)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete the instance referred to by <name>",
	Long: `Delete a Compute Engine instance by name.

The instance is keyed by project/zone/name; the configuration file is
not required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		ctx := context.Background()

		mgr, err := newManager(ctx)
		if err != nil {
			return err
		}

		op, err := mgr.Delete(ctx, name, machine.DeleteOptions{Wait: flagWait})
		if err != nil {
			return fmt.Errorf("failed to delete instance: %w", err)
		}

		if !flagWait {
			fmt.Printf("Delete requested; operation: %s\n", op.Name)
			return nil
		}

		fmt.Printf("✓ Instance %s deleted successfully!\n", name)
		return nil
	},
}

func init() {
	createCmd.Flags().BoolVar(&flagWait, "wait", true, "wait for the operation to complete")
	deleteCmd.Flags().BoolVar(&flagWait, "wait", true, "wait for the operation to complete")
}

// Output flags for list/describe
var (
	flagOutput    string
	flagNoHeaders bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List instances in the target project/zone",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := output.ValidateFormat(flagOutput); err != nil {
			return err
		}

		mgr, err := newManager(ctx)
		if err != nil {
			return err
		}

		infos, err := mgr.List(ctx)
		if err != nil {
			return err
		}

		formatter, err := output.NewFormatter(output.Options{
			Format:    output.Format(flagOutput),
			NoHeaders: flagNoHeaders,
		})
		if err != nil {
			return err
		}

		out, err := formatter.FormatInstanceList(infos)
		if err != nil {
			return err
		}

		fmt.Print(out)
		return nil
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show details for a single instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		ctx := context.Background()

		if err := output.ValidateFormat(flagOutput); err != nil {
			return err
		}

		mgr, err := newManager(ctx)
		if err != nil {
			return err
		}

		info, err := mgr.Describe(ctx, name)
		if err != nil {
			return err
		}

		formatter, err := output.NewFormatter(output.Options{
			Format:    output.Format(flagOutput),
			NoHeaders: flagNoHeaders,
		})
		if err != nil {
			return err
		}

		out, err := formatter.FormatInstance(info)
		if err != nil {
			return err
		}

		fmt.Print(out)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{listCmd, describeCmd} {
		cmd.Flags().StringVarP(&flagOutput, "output", "o", string(output.FormatTable), "output format (table, yaml, json)")
		cmd.Flags().BoolVar(&flagNoHeaders, "no-headers", false, "omit headers in table output")
	}
}
