package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Packages
	schema "github.com/chalpu/go-guides/pkg/schema"
	upload "github.com/chalpu/go-guides/pkg/upload"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type UploadCommands struct {
	Upload UploadCommand `cmd:"" group:"CATALOG" help:"Convert and upload guide image/SVG pairs"`
}

type UploadCommand struct {
	Image    string   `name:"image" type:"existingfile" help:"Raster image (png/jpg/jpeg)" xor:"source"`
	Vector   string   `name:"vector" type:"existingfile" help:"Source SVG, converted to a vector drawable before upload"`
	Dir      string   `name:"dir" type:"existingdir" help:"Upload every matching image/SVG pair in a directory" xor:"source"`
	Category int      `name:"category" default:"1" help:"Sub-category code"`
	Content  string   `name:"content" help:"Optional description"`
	Tags     []string `name:"tag" help:"Tags, repeatable"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *UploadCommand) Run(ctx *Globals) error {
	if !schema.Category(cmd.Category).Valid() {
		return fmt.Errorf("unknown category code %d", cmd.Category)
	}

	var groups []*upload.Group
	var err error
	switch {
	case cmd.Dir != "":
		if groups, err = cmd.groupsFromDir(); err != nil {
			return err
		}
	case cmd.Image != "" && cmd.Vector != "":
		g, err := cmd.newGroup("1", cmd.Image, cmd.Vector)
		if err != nil {
			return err
		}
		groups = []*upload.Group{g}
	default:
		return fmt.Errorf("either --dir or both --image and --vector are required")
	}

	c, err := ctx.Client()
	if err != nil {
		return err
	}
	uploader, err := upload.New(c, upload.WithProgress(func(groupID string, pct int) {
		fmt.Fprintf(os.Stderr, "\r%s: %3d%%", groupID, pct)
	}))
	if err != nil {
		return err
	}

	result := uploader.UploadAll(ctx.ctx, groups)
	fmt.Fprintln(os.Stderr)
	for _, g := range groups {
		if g.Status == upload.StatusError {
			fmt.Fprintf(os.Stderr, "%s: %s\n", g.FileName, g.Err)
		}
	}
	fmt.Printf("uploaded %d, failed %d, skipped %d\n", result.Succeeded, result.Failed, result.Skipped)
	if result.Failed > 0 {
		return fmt.Errorf("%d upload(s) failed", result.Failed)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *UploadCommand) newGroup(id, imagePath, vectorPath string) (*upload.Group, error) {
	g := upload.NewGroup(id)
	g.Category = schema.Category(cmd.Category)
	g.Content = cmd.Content
	for _, tag := range cmd.Tags {
		if err := g.AddTag(tag); err != nil {
			return nil, err
		}
	}

	image, err := upload.ReadAssetFile(imagePath)
	if err != nil {
		return nil, err
	}
	g.SetImage(image)

	vector, err := upload.ReadAssetFile(vectorPath)
	if err != nil {
		return nil, err
	}
	if err := g.SetVector(vector); err != nil {
		return nil, fmt.Errorf("%s: %w", vectorPath, err)
	}

	if g.NameMismatch() {
		return nil, fmt.Errorf("file names %q and %q do not match", filepath.Base(imagePath), filepath.Base(vectorPath))
	}
	return g, nil
}

// groupsFromDir pairs every raster image in the directory with the SVG of the
// same base name. Unpaired files are reported and skipped.
func (cmd *UploadCommand) groupsFromDir() ([]*upload.Group, error) {
	entries, err := os.ReadDir(cmd.Dir)
	if err != nil {
		return nil, err
	}

	images := make(map[string]string)
	vectors := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		base := strings.TrimSuffix(name, filepath.Ext(name))
		switch strings.ToLower(filepath.Ext(name)) {
		case ".png", ".jpg", ".jpeg":
			images[base] = filepath.Join(cmd.Dir, name)
		case ".svg":
			vectors[base] = filepath.Join(cmd.Dir, name)
		}
	}

	// Base names are sorted so batch order is stable across runs
	bases := make([]string, 0, len(images))
	for base := range images {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	var groups []*upload.Group
	for _, base := range bases {
		vectorPath, ok := vectors[base]
		if !ok {
			fmt.Fprintf(os.Stderr, "skipping %s: no matching SVG\n", filepath.Base(images[base]))
			continue
		}
		g, err := cmd.newGroup(base, images[base], vectorPath)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no image/SVG pairs found in %s", cmd.Dir)
	}
	return groups, nil
}
