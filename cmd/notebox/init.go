package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notebox/internal/config"
	"github.com/aretw0/notebox/internal/platform"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter notebox.yaml",
	Long:  `Write a notebox.yaml holding the default configuration into the current directory.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		path := filepath.Join(cwd, platform.ConfigNames[0])
		if err := writeStarterConfig(afero.NewOsFs(), path, initForce); err != nil {
			fatal("Failed to write config", err)
		}

		fmt.Println("Wrote", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func writeStarterConfig(fs afero.Fs, path string, force bool) error {
	if !force {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("# notebox server configuration. NOTEBOX_* environment variables take precedence.\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(config.Default()); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, buf.Bytes(), 0o644)
}
