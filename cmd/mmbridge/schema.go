package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osvalr/mmbridge/pkg/schema"
)

var (
	schemaKind string
	schemaList bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Schema operations",
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export JSON Schema to stdout",
	RunE:  runSchemaExport,
}

func runSchemaExport(cmd *cobra.Command, args []string) error {
	if schemaList {
		fmt.Println("config")
		for _, kind := range schema.ResultKinds() {
			fmt.Println(kind)
		}
		return nil
	}

	var data []byte
	var err error
	if schemaKind == "config" {
		data, err = schema.GenerateConfigJSONSchema()
	} else {
		data, err = schema.GenerateResultJSONSchema(schemaKind)
	}
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
