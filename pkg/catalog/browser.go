// Package catalog holds the client-side state of the fetched guide catalog:
// sorting, multi-selection and batch-delete validation. All operations are
// pure state transformations; the only server round-trip they prepare is the
// single batch delete call carrying a full id list.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	// Packages
	schema "github.com/chalpu/go-guides/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// SortKey selects the catalog ordering.
type SortKey int

// Browser holds one reloadable view over the fetched catalog with a
// selection set. The selection is invalidated whenever the underlying list
// is reloaded; the most recent server reload is always the source of truth.
type Browser struct {
	guides   []schema.Guide
	selected map[uint64]bool
}

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	SortByID SortKey = iota
	SortByName
	SortByCategory // category, then subcategory, then name
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ErrEmptyInput is returned when a batch-delete id list contains no ids.
var ErrEmptyInput = errors.New("no valid guide ids given")

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewBrowser() *Browser {
	return &Browser{selected: make(map[uint64]bool)}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ParseSortKey maps the user-facing sort name onto a SortKey.
func ParseSortKey(name string) (SortKey, error) {
	switch name {
	case "", "id":
		return SortByID, nil
	case "name":
		return SortByName, nil
	case "category":
		return SortByCategory, nil
	}
	return 0, fmt.Errorf("unknown sort key %q", name)
}

// Reload replaces the catalog view with a fresh server result and clears the
// selection.
func (b *Browser) Reload(guides []schema.Guide) {
	b.guides = guides
	b.selected = make(map[uint64]bool)
}

// Guides returns the current view in its loaded order.
func (b *Browser) Guides() []schema.Guide {
	return b.guides
}

// Len returns the number of guides in the view.
func (b *Browser) Len() int {
	return len(b.guides)
}

// Sorted returns the guides ordered by the given key. The category key
// breaks ties by subcategory and then name; all sorts are stable and
// deterministic.
func (b *Browser) Sorted(key SortKey, descending bool) []schema.Guide {
	result := make([]schema.Guide, len(b.guides))
	copy(result, b.guides)
	less := func(a, c schema.Guide) bool {
		switch key {
		case SortByName:
			return a.FileName < c.FileName
		case SortByCategory:
			if a.CategoryName != c.CategoryName {
				return a.CategoryName < c.CategoryName
			}
			if a.SubCategoryName != c.SubCategoryName {
				return a.SubCategoryName < c.SubCategoryName
			}
			return a.FileName < c.FileName
		default:
			return a.GuideID < c.GuideID
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if descending {
			return less(result[j], result[i])
		}
		return less(result[i], result[j])
	})
	return result
}

// Select toggles the selection state of one guide. Unknown ids are ignored.
func (b *Browser) Select(id uint64, selected bool) {
	if !b.contains(id) {
		return
	}
	if selected {
		b.selected[id] = true
	} else {
		delete(b.selected, id)
	}
}

// SelectAll marks every guide in the view as selected.
func (b *Browser) SelectAll() {
	for _, g := range b.guides {
		b.selected[g.GuideID] = true
	}
}

// ClearSelection empties the selection set.
func (b *Browser) ClearSelection() {
	b.selected = make(map[uint64]bool)
}

// SelectCategory adds every guide in the named category to the selection and
// returns how many were added or already selected.
func (b *Browser) SelectCategory(categoryName string) int {
	count := 0
	for _, g := range b.guides {
		if g.CategoryName == categoryName {
			b.selected[g.GuideID] = true
			count++
		}
	}
	return count
}

// Selected returns the selected ids in ascending order.
func (b *Browser) Selected() []uint64 {
	result := make([]uint64, 0, len(b.selected))
	for id := range b.selected {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// ParseIDs parses a comma-separated id list for batch deletion and validates
// every id against the loaded catalog. Any unknown id aborts the whole batch
// with an error naming the offending ids; nothing is deleted in that case.
func (b *Browser) ParseIDs(input string) ([]uint64, error) {
	var ids []uint64
	seen := make(map[uint64]bool)
	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.ParseUint(field, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrEmptyInput
	}

	var unknown []string
	for _, id := range ids {
		if !b.contains(id) {
			unknown = append(unknown, strconv.FormatUint(id, 10))
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown guide ids: %s", strings.Join(unknown, ", "))
	}
	return ids, nil
}

// FilterCategory returns the guides whose category or subcategory matches
// the given name.
func (b *Browser) FilterCategory(name string) []schema.Guide {
	var result []schema.Guide
	for _, g := range b.guides {
		if g.CategoryName == name || g.SubCategoryName == name {
			result = append(result, g)
		}
	}
	return result
}

// CategoryIDs returns the ids of every guide in the named category.
func (b *Browser) CategoryIDs(categoryName string) []uint64 {
	var result []uint64
	for _, g := range b.guides {
		if g.CategoryName == categoryName {
			result = append(result, g.GuideID)
		}
	}
	return result
}

// AllIDs returns the ids of every guide in the view.
func (b *Browser) AllIDs() []uint64 {
	result := make([]uint64, 0, len(b.guides))
	for _, g := range b.guides {
		result = append(result, g.GuideID)
	}
	return result
}

// Remove applies an optimistic local removal after a successful delete call,
// pruning both the view and the selection. The edit is provisional: the next
// Reload from the server replaces it.
func (b *Browser) Remove(ids []uint64) {
	removed := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		removed[id] = true
	}
	filtered := b.guides[:0]
	for _, g := range b.guides {
		if !removed[g.GuideID] {
			filtered = append(filtered, g)
		}
	}
	b.guides = filtered
	for id := range removed {
		delete(b.selected, id)
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (b *Browser) contains(id uint64) bool {
	for _, g := range b.guides {
		if g.GuideID == id {
			return true
		}
	}
	return false
}
