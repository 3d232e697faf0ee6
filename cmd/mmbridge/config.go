package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osvalr/mmbridge/pkg/schema"
	"github.com/osvalr/mmbridge/pkg/settings"
)

var (
	configType    string
	configPersist string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write MediaMonkey's settings store",
}

var configGetCmd = &cobra.Command{
	Use:   "get [section] [key]",
	Short: "Read one settings value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}
	typ, err := settings.ParseType(configType)
	if err != nil {
		return err
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	result, err := settings.GetValue(sess.Settings(), args[0], args[1], typ)
	if err != nil {
		return err
	}
	return printJSON(result)
}

var configSetCmd = &cobra.Command{
	Use:   "set [section] [key] [value]",
	Short: "Write one settings value",
	Long: `Write a value into the application's settings store. The value is
coerced to the declared type before anything touches the store:

  mmbridge config set Player Volume 80 --type integer --persist flush`,
	Args: cobra.ExactArgs(3),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}
	typ, err := settings.ParseType(configType)
	if err != nil {
		return err
	}

	persistName := configPersist
	if persistName == "" {
		persistName = cfg.DefaultPersist
	}
	mode, err := settings.ParsePersistMode(persistName)
	if err != nil {
		return err
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	result, err := settings.SetValue(sess.Settings(), args[0], args[1], args[2], typ, mode)
	if err != nil {
		return err
	}
	return printJSON(result)
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [mmbridge.yaml]",
	Short: "Validate a bridge configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := schema.LoadFile(args[0])
	if err != nil {
		return err
	}
	if errs := schema.Validate(cfg); len(errs) > 0 {
		for i, e := range errs {
			fmt.Printf("  %d. [%s] %s: %s\n", i+1, e.Phase, e.Path, e.Message)
		}
		if schema.HasErrors(errs) {
			return fmt.Errorf("validation failed with %d finding(s)", len(errs))
		}
	}
	fmt.Printf("✓ %s is valid\n", args[0])
	return nil
}
