package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	// Packages
	catalog "github.com/chalpu/go-guides/pkg/catalog"
	httpclient "github.com/chalpu/go-guides/pkg/httpclient"
	schema "github.com/chalpu/go-guides/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type CatalogCommands struct {
	List   ListCommand   `cmd:"" group:"CATALOG" help:"List registered guides"`
	Get    GetCommand    `cmd:"" group:"CATALOG" help:"Get guide details by id"`
	Delete DeleteCommand `cmd:"" group:"CATALOG" help:"Delete guides by id, category or all at once"`
}

type ListCommand struct {
	Sort     string `name:"sort" help:"Sort order (id, name, category)" default:"id" enum:"id,name,category"`
	Desc     bool   `name:"desc" help:"Sort in descending order"`
	Page     int    `name:"page" help:"Page number" default:"0"`
	Size     int    `name:"size" help:"Page size" default:"50"`
	All      bool   `name:"all" short:"a" help:"Fetch every page"`
	Category string `name:"category" help:"Only list guides in the named category or subcategory"`
	PrintIDs bool   `name:"print-ids" help:"Print the listed guide ids as one comma-separated line"`
	Counts   bool   `name:"counts" help:"Print per-category guide counts instead of the guide list"`
}

type GetCommand struct {
	IDs []uint64 `arg:"" name:"id" help:"Guide ids"`
}

type DeleteCommand struct {
	Args     []string `arg:"" name:"id" optional:"" help:"Guide ids to delete"`
	IDs      string   `name:"ids" help:"Comma-separated guide ids to delete"`
	Category string   `name:"category" help:"Delete every guide in the named category"`
	All      bool     `name:"all" help:"Delete the entire catalog"`
	Yes      bool     `name:"yes" short:"y" help:"Skip the confirmation prompt"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ListCommand) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}

	var guides []schema.Guide
	if cmd.All {
		if guides, err = fetchAll(ctx, c); err != nil {
			return err
		}
	} else {
		list, err := c.ListGuides(ctx.ctx, schema.Pageable{Page: cmd.Page, Size: cmd.Size})
		if err != nil {
			return err
		}
		guides = list.Content
	}

	// Ordering is applied on the client so it matches the catalog browser
	key, err := catalog.ParseSortKey(cmd.Sort)
	if err != nil {
		return err
	}
	browser := catalog.NewBrowser()
	browser.Reload(guides)
	if cmd.Category != "" {
		browser.Reload(browser.FilterCategory(cmd.Category))
	}
	sorted := browser.Sorted(key, cmd.Desc)

	switch {
	case cmd.Counts:
		return printCounts(sorted)
	case cmd.PrintIDs:
		return printIDs(sorted)
	case ctx.Debug:
		return prettyJSON(sorted)
	}
	return printGuides(sorted)
}

func (cmd *GetCommand) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	details, err := c.GetGuideDetails(ctx.ctx, cmd.IDs)
	if err != nil {
		return err
	}
	return prettyJSON(details)
}

func (cmd *DeleteCommand) Run(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}

	// The batch is computed against a fresh catalog snapshot so stale ids are
	// rejected before the server sees them
	guides, err := fetchAll(ctx, c)
	if err != nil {
		return err
	}
	browser := catalog.NewBrowser()
	browser.Reload(guides)

	// Positional ids and the --ids flag share one comma-separated form
	input := cmd.IDs
	if len(cmd.Args) > 0 {
		input = strings.Join(append(cmd.Args, cmd.IDs), ",")
	}

	var ids []uint64
	switch {
	case input != "":
		if ids, err = browser.ParseIDs(input); err != nil {
			return err
		}
	case cmd.Category != "":
		if ids = browser.CategoryIDs(cmd.Category); len(ids) == 0 {
			return fmt.Errorf("no guides in category %q", cmd.Category)
		}
	case cmd.All:
		if ids = browser.AllIDs(); len(ids) == 0 {
			return fmt.Errorf("catalog is empty")
		}
	default:
		return fmt.Errorf("guide ids, --ids, --category or --all is required")
	}

	if !cmd.Yes && !confirm(fmt.Sprintf("Delete %d guide(s)?", len(ids))) {
		return nil
	}
	if err := c.DeleteGuides(ctx.ctx, ids); err != nil {
		return err
	}
	browser.Remove(ids)
	fmt.Printf("deleted %d guide(s), %d remaining\n", len(ids), browser.Len())
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// fetchAll pages through the whole catalog.
func fetchAll(ctx *Globals, c *httpclient.Client) ([]schema.Guide, error) {
	var guides []schema.Guide
	for page := 0; ; page++ {
		list, err := c.ListGuides(ctx.ctx, schema.Pageable{Page: page, Size: schema.MaxPageSize})
		if err != nil {
			return nil, err
		}
		guides = append(guides, list.Content...)
		if !list.HasNext {
			return guides, nil
		}
	}
}

// printIDs prints the guide ids as one comma-separated line, so the output
// can be pasted straight into a "delete --ids" invocation.
func printIDs(guides []schema.Guide) error {
	ids := make([]string, 0, len(guides))
	for _, g := range guides {
		ids = append(ids, strconv.FormatUint(g.GuideID, 10))
	}
	_, err := fmt.Println(strings.Join(ids, ","))
	return err
}

// printCounts prints the number of guides per category and subcategory.
func printCounts(guides []schema.Guide) error {
	type bucket struct {
		category, subcategory string
	}
	counts := make(map[bucket]int)
	var order []bucket
	for _, g := range guides {
		key := bucket{g.CategoryName, g.SubCategoryName}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tSUBCATEGORY\tCOUNT")
	for _, key := range order {
		fmt.Fprintf(w, "%s\t%s\t%d\n", key.category, key.subcategory, counts[key])
	}
	fmt.Fprintf(w, "TOTAL\t\t%d\n", len(guides))
	return w.Flush()
}

func printGuides(guides []schema.Guide) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSUBCATEGORY\tTAGS")
	for _, g := range guides {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", g.GuideID, g.FileName, g.CategoryName, g.SubCategoryName, strings.Join(g.Tags, ","))
	}
	return w.Flush()
}

func prettyJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
