package agent

// Rule tags text with Type when Match reports true.
type Rule struct {
	Type  TaskType
	Match func(text string) bool
}

// Classifier evaluates its rules in priority order; the first match wins and
// anything unmatched is TaskGeneral. Classification has no side effects.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules ...Rule) *Classifier {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Match != nil {
			kept = append(kept, r)
		}
	}
	return &Classifier{rules: kept}
}

// RulesFromCatalog derives one rule per catalog entry, in registration order.
func RulesFromCatalog(c *ToolCatalog) []Rule {
	entries := c.Entries()
	rules := make([]Rule, 0, len(entries))
	for _, e := range entries {
		rules = append(rules, Rule{Type: e.Type, Match: e.Tool.Detect})
	}
	return rules
}

func (c *Classifier) Classify(text string) TaskType {
	for _, r := range c.rules {
		if r.Match(text) {
			return r.Type
		}
	}
	return TaskGeneral
}
