package models

import "fmt"

// Category identifies one metric group shown as its own meter.
type Category string

const (
	CategoryCPU     Category = "cpu"
	CategoryMemory  Category = "memory"
	CategoryNetwork Category = "network"
	CategoryDisk    Category = "disk"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryCPU, CategoryMemory, CategoryNetwork, CategoryDisk}

// ParseCategory converts a name such as "cpu" into a Category.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// Title returns the human readable name used in tooltips.
func (c Category) Title() string {
	switch c {
	case CategoryCPU:
		return "CPU"
	case CategoryMemory:
		return "Memory"
	case CategoryNetwork:
		return "Network"
	case CategoryDisk:
		return "Disk"
	default:
		return string(c)
	}
}
