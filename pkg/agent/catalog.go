package agent

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Protocol-Lattice/tiered-agent/pkg/tools"
)

// CatalogEntry binds a tool to the task type it serves and the label used in step descriptions.
type CatalogEntry struct {
	Type  TaskType
	Label string
	Tool  tools.Tool
}

// ToolCatalog is an ordered registry of tools. Registration order is classification priority.
type ToolCatalog struct {
	mu      sync.RWMutex
	entries []CatalogEntry
	byName  map[string]int
	byType  map[TaskType]int
}

// NewToolCatalog constructs an empty catalog.
func NewToolCatalog() *ToolCatalog {
	return &ToolCatalog{
		byName: make(map[string]int),
		byType: make(map[TaskType]int),
	}
}

// DefaultToolCatalog registers the calculator ahead of the translator.
func DefaultToolCatalog(translator *tools.Translator) *ToolCatalog {
	if translator == nil {
		translator = tools.NewTranslator(nil)
	}
	c := NewToolCatalog()
	_ = c.Register(TaskMath, "Math calculation", tools.NewCalculator())
	_ = c.Register(TaskTranslation, "Translation", translator)
	return c
}

// Register appends a tool. Names are matched case-insensitively; names and task types must be unique.
func (c *ToolCatalog) Register(taskType TaskType, label string, tool tools.Tool) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	if taskType == TaskGeneral {
		return fmt.Errorf("tool %s cannot serve general tasks", tool.Name())
	}
	key := strings.ToLower(strings.TrimSpace(tool.Name()))
	if key == "" {
		return fmt.Errorf("tool name is empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byName[key]; exists {
		return fmt.Errorf("tool %s already registered", tool.Name())
	}
	if _, exists := c.byType[taskType]; exists {
		return fmt.Errorf("a tool for %s tasks is already registered", taskType)
	}
	c.byName[key] = len(c.entries)
	c.byType[taskType] = len(c.entries)
	c.entries = append(c.entries, CatalogEntry{Type: taskType, Label: label, Tool: tool})
	return nil
}

// Lookup returns the entry registered under name.
func (c *ToolCatalog) Lookup(name string) (CatalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[i], true
}

// Entries returns a snapshot in registration order.
func (c *ToolCatalog) Entries() []CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
