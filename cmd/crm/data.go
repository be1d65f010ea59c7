package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/query"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/seed"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the demo dataset",
	Long: `Seed the demo dataset when the store has never been initialized or
holds an older data version. Use --force to replace existing data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		seeded, err := a.bootstrap(cmd.Context(), force)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !seeded {
			fmt.Fprintln(out, "Data already initialized (use --force to reseed)")
			return nil
		}
		fmt.Fprintf(out, "✓ Seeded data version %s\n", types.CurrentDataVersion)
		return printCounts(cmd, a)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every record and forget the seed stamp",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := seed.Reset(cmd.Context(), a.kv, a.reg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ All collections cleared")
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list COLLECTION",
	Short: "List records of a collection",
	Long: `List records of a collection as JSON.

Examples:
  crm list leads --search acme
  crm list opportunities --sort amount:desc --page 2 --page-size 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetString("search")
		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("page-size")
		sortSpec, _ := cmd.Flags().GetString("sort")

		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.reg.Lookup(args[0])
		if err != nil {
			return err
		}

		records, err := toRecords(c.SearchAny(term))
		if err != nil {
			return err
		}
		if sortSpec != "" {
			field, dir := parseSort(sortSpec)
			records = query.SortBy(records, func(r record) string { return r.sortKey(field) }, dir)
		}
		return printJSON(cmd.OutOrStdout(), query.Paginate(records, page, size))
	},
}

var getCmd = &cobra.Command{
	Use:   "get COLLECTION ID",
	Short: "Show one record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.reg.Lookup(args[0])
		if err != nil {
			return err
		}
		item, ok, err := c.GetAny(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s %s not found", c.Entity(), args[1])
		}
		return printJSON(cmd.OutOrStdout(), item)
	},
}

var createCmd = &cobra.Command{
	Use:   "create COLLECTION -f FILE",
	Short: "Create a record from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		data, err := readDocument(file)
		if err != nil {
			return err
		}

		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.reg.Lookup(args[0])
		if err != nil {
			return err
		}
		item, err := c.CreateJSON(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Entity(), err)
		}
		return printJSON(cmd.OutOrStdout(), item)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update COLLECTION ID",
	Short: "Apply a partial update to a record",
	Long: `Apply a partial update to a record. Fields come from --set key=value
pairs (values are parsed as JSON when possible) or from a patch file.

Examples:
  crm update leads 1717000000000abc --set status=Qualified --set rating=Hot
  crm update opportunities opp_1 -f patch.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, _ := cmd.Flags().GetStringArray("set")
		file, _ := cmd.Flags().GetString("file")

		var (
			patch []byte
			err   error
		)
		switch {
		case file != "" && len(sets) > 0:
			return fmt.Errorf("use either --set or --file, not both")
		case file != "":
			patch, err = readDocument(file)
		case len(sets) > 0:
			patch, err = patchFromPairs(sets)
		default:
			return fmt.Errorf("nothing to update: pass --set or --file")
		}
		if err != nil {
			return err
		}

		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.reg.Lookup(args[0])
		if err != nil {
			return err
		}
		item, ok, err := c.UpdateJSON(cmd.Context(), args[1], patch)
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", c.Entity(), err)
		}
		if !ok {
			return fmt.Errorf("%s %s not found", c.Entity(), args[1])
		}
		return printJSON(cmd.OutOrStdout(), item)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete COLLECTION ID",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.reg.Lookup(args[0])
		if err != nil {
			return err
		}
		removed, err := c.Delete(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("%s %s not found", c.Entity(), args[1])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s %s\n", c.Entity(), args[1])
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts and storage usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := printCounts(cmd, a); err != nil {
			return err
		}
		if q, ok := a.kv.(*storage.QuotaStore); ok {
			used, err := q.Used(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nStorage: %d of %d bytes (%.1f%%)\n",
				used, q.Limit(), float64(used)/float64(q.Limit())*100)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().Bool("force", false, "Replace existing data")

	listCmd.Flags().String("search", "", "Case-insensitive search term")
	listCmd.Flags().Int("page", 1, "Page number (1-based)")
	listCmd.Flags().Int("page-size", query.DefaultPageSize, "Records per page")
	listCmd.Flags().String("sort", "", "Sort field with optional direction, e.g. amount:desc")

	createCmd.Flags().StringP("file", "f", "", "JSON or YAML file with the record (required)")
	_ = createCmd.MarkFlagRequired("file")

	updateCmd.Flags().StringArray("set", nil, "Field assignment key=value (repeatable)")
	updateCmd.Flags().StringP("file", "f", "", "JSON or YAML patch file")
}

func printCounts(cmd *cobra.Command, a *app) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLLECTION\tRECORDS")
	for _, c := range a.reg.Collections() {
		fmt.Fprintf(w, "%s\t%d\n", c.Name(), c.Len())
	}
	return w.Flush()
}

// readDocument loads a JSON or YAML file and returns it as JSON
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %v", err)
		}
		return json.Marshal(doc)
	default:
		if !json.Valid(data) {
			return nil, fmt.Errorf("failed to parse %s: not valid JSON", path)
		}
		return data, nil
	}
}

// patchFromPairs turns key=value pairs into a JSON object. Values that
// parse as JSON keep their type; everything else is a string.
func patchFromPairs(pairs []string) ([]byte, error) {
	patch := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q (want key=value)", p)
		}
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			parsed = v
		}
		patch[k] = parsed
	}
	return json.Marshal(patch)
}

// record is a listed item decoded into its JSON fields for sorting
type record map[string]any

func toRecords(items []any) ([]record, error) {
	out := make([]record, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		var r record
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// sortKey renders a field so that string order matches value order for
// text, dates and non-negative numbers.
func (r record) sortKey(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%020.4f", v)
	case string:
		return strings.ToLower(v)
	default:
		return fmt.Sprint(v)
	}
}

func parseSort(spec string) (string, types.SortDirection) {
	field, dir, _ := strings.Cut(spec, ":")
	if strings.EqualFold(dir, string(types.SortDesc)) {
		return field, types.SortDesc
	}
	return field, types.SortAsc
}
