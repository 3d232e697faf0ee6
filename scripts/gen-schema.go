//go:build ignore

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osvalr/mmbridge/pkg/schema"
)

func main() {
	if err := os.MkdirAll("schemas", 0755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	data, err := schema.GenerateConfigJSONSchema()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("schemas/config-v1.json", data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("wrote schemas/config-v1.json")

	for _, kind := range schema.ResultKinds() {
		data, err := schema.GenerateResultJSONSchema(kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error generating %s schema: %v\n", kind, err)
			os.Exit(1)
		}
		path := filepath.Join("schemas", kind+"-v1.json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "write: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	}
}
