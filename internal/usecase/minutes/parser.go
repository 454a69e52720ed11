package minutes

import (
	"encoding/json"
	"strings"
)

// actionItemKeys are tried in order; the first key holding a non-empty list
// wins. Older pipeline versions emitted "tasks" or "actions".
var actionItemKeys = []string{"action_items", "tasks", "actions"}

// ActionItem is one task candidate extracted from a decision payload
type ActionItem struct {
	Title    string `json:"title"`
	Assignee string `json:"assignee,omitempty"`
	Priority string `json:"priority,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
}

// DecisionPayload is the parsed form of the stored AI decision text
type DecisionPayload struct {
	Decisions   []string     `json:"decisions,omitempty"`
	ActionItems []ActionItem `json:"action_items,omitempty"`
	Raw         string       `json:"_raw,omitempty"`
}

// IsEmpty reports whether nothing usable was extracted
func (p DecisionPayload) IsEmpty() bool {
	return len(p.Decisions) == 0 && len(p.ActionItems) == 0 && p.Raw == ""
}

// ParseDecisionPayload turns the stored decision text into a structured
// payload. Strategies are tried in order: strict JSON first, then a
// Python-literal dict conversion for records written by the legacy pipeline.
// Text neither strategy can read yields an empty payload, never an error;
// a stored payload must not be able to break the workflow reading it.
func ParseDecisionPayload(raw string) DecisionPayload {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DecisionPayload{}
	}

	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		converted, ok := pythonLiteralToJSON(raw)
		if !ok {
			return DecisionPayload{}
		}
		if err := json.Unmarshal([]byte(converted), &value); err != nil {
			return DecisionPayload{}
		}
	}

	obj, ok := value.(map[string]interface{})
	if !ok {
		// Parsed but not an object: keep the text so nothing is silently lost.
		return DecisionPayload{Raw: raw}
	}

	return DecisionPayload{
		Decisions:   extractStrings(obj["decisions"]),
		ActionItems: extractActionItems(obj),
	}
}

// extractActionItems returns the items under the first alias key holding a
// non-empty list. The alias is chosen on the raw list alone; untitled entries
// are then dropped, so a list of unusable items still shadows later aliases.
func extractActionItems(obj map[string]interface{}) []ActionItem {
	for _, key := range actionItemKeys {
		list, ok := obj[key].([]interface{})
		if !ok || len(list) == 0 {
			continue
		}

		items := make([]ActionItem, 0, len(list))
		for _, entry := range list {
			switch v := entry.(type) {
			case string:
				if title := strings.TrimSpace(v); title != "" {
					items = append(items, ActionItem{Title: title})
				}
			case map[string]interface{}:
				item := ActionItem{
					Title:    firstString(v, "title", "task", "name"),
					Assignee: firstString(v, "assignee", "assigned_to", "owner"),
					Priority: firstString(v, "priority"),
					DueDate:  firstString(v, "due_date", "deadline"),
				}
				if item.Title != "" {
					items = append(items, item)
				}
			}
		}
		if len(items) == 0 {
			return nil
		}
		return items
	}
	return nil
}

// extractStrings flattens a list of strings or {text|decision} objects
func extractStrings(value interface{}) []string {
	list, ok := value.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, entry := range list {
		switch v := entry.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				out = append(out, s)
			}
		case map[string]interface{}:
			if s := firstString(v, "decision", "text"); s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// pythonLiteralToJSON rewrites a Python dict/list literal into JSON: single
// quoted strings become double quoted, and the bare constants True, False and
// None become their JSON spellings. It only walks quoting state; it does not
// validate structure, the JSON decoder does that afterwards.
func pythonLiteralToJSON(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch r {
		case '\'', '"':
			consumed, ok := convertString(runes, i, &b)
			if !ok {
				return "", false
			}
			i = consumed
		default:
			if isIdentStart(r) {
				start := i
				for i < len(runes) && isIdentPart(runes[i]) {
					i++
				}
				word := string(runes[start:i])
				switch word {
				case "True":
					b.WriteString("true")
				case "False":
					b.WriteString("false")
				case "None":
					b.WriteString("null")
				default:
					// A bare identifier is not valid in either syntax.
					return "", false
				}
			} else {
				b.WriteRune(r)
				i++
			}
		}
	}
	return b.String(), true
}

// convertString copies one quoted string starting at runes[start], emitting it
// double quoted with inner double quotes escaped. Returns the index just past
// the closing quote.
func convertString(runes []rune, start int, b *strings.Builder) (int, bool) {
	quote := runes[start]
	b.WriteByte('"')
	i := start + 1
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes):
			next := runes[i+1]
			if next == '\'' {
				// JSON has no \' escape.
				b.WriteRune('\'')
			} else {
				b.WriteRune('\\')
				b.WriteRune(next)
			}
			i += 2
		case r == quote:
			b.WriteByte('"')
			return i + 1, true
		case r == '"':
			b.WriteString(`\"`)
			i++
		default:
			b.WriteRune(r)
			i++
		}
	}
	return 0, false
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}
