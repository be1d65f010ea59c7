package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/cache"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply records from a YAML file",
	Long: `Apply CRM records from a multi-document YAML file. Each document
names the entity kind and its fields. Records whose id already exists are
updated, the rest are created.

Example:
  kind: lead
  spec:
    firstName: Ada
    lastName: Lovelace
    company: Analytical Engines
    status: New
  ---
  kind: account
  spec:
    id: acc_1
    name: Acme Corp

  crm apply -f records.yaml`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("file", "f", "", "YAML file to apply (required)")
	_ = applyCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(applyCmd)
}

// Resource is one document of an apply file
type Resource struct {
	Kind string         `yaml:"kind"`
	Spec map[string]any `yaml:"spec"`
}

func runApply(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %v", err)
	}
	defer f.Close()

	resources, err := decodeResources(f)
	if err != nil {
		return err
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	for i, res := range resources {
		c, err := a.reg.Lookup(res.Kind)
		if err != nil {
			return fmt.Errorf("document %d: %w", i+1, err)
		}
		if err := applyResource(cmd, c, res); err != nil {
			return fmt.Errorf("document %d: %w", i+1, err)
		}
	}
	return nil
}

func decodeResources(r io.Reader) ([]Resource, error) {
	dec := yaml.NewDecoder(r)
	var resources []Resource
	for {
		var res Resource
		err := dec.Decode(&res)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %v", err)
		}
		if res.Kind == "" {
			continue
		}
		resources = append(resources, res)
	}
	return resources, nil
}

func applyResource(cmd *cobra.Command, c cache.Collection, res Resource) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	data, err := json.Marshal(res.Spec)
	if err != nil {
		return err
	}

	// Try to update an existing record first
	id := getString(res.Spec, "id", "")
	if id != "" {
		_, found, err := c.UpdateJSON(ctx, id, data)
		if err != nil {
			return fmt.Errorf("failed to update %s: %v", c.Entity(), err)
		}
		if found {
			fmt.Fprintf(out, "✓ %s updated: %s\n", c.Entity(), id)
			return nil
		}
	}

	item, err := c.CreateJSON(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", c.Entity(), err)
	}
	fmt.Fprintf(out, "✓ %s created: %s\n", c.Entity(), entityID(item))
	return nil
}

func getString(m map[string]any, key, defaultValue string) string {
	if v, ok := m[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return defaultValue
}

func entityID(item any) string {
	if e, ok := item.(interface{ GetID() string }); ok {
		return e.GetID()
	}
	return ""
}
