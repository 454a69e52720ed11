package minutes

import "testing"

func TestParseDecisionPayload_StrictJSON(t *testing.T) {
	raw := `{"decisions": ["Ship v2", "Drop legacy import"], "action_items": [{"title": "Write rollout plan", "assignee": "alice", "priority": "high", "due_date": "2026-04-01"}]}`

	p := ParseDecisionPayload(raw)
	if len(p.Decisions) != 2 || p.Decisions[0] != "Ship v2" {
		t.Fatalf("decisions = %v", p.Decisions)
	}
	if len(p.ActionItems) != 1 {
		t.Fatalf("action items = %v", p.ActionItems)
	}
	item := p.ActionItems[0]
	if item.Title != "Write rollout plan" || item.Assignee != "alice" || item.Priority != "high" || item.DueDate != "2026-04-01" {
		t.Fatalf("item = %+v", item)
	}
}

func TestParseDecisionPayload_PythonLiteral(t *testing.T) {
	raw := `{'decisions': ['Adopt the new format'], 'action_items': [{'title': 'Migrate old records', 'assignee': 'bob'}], 'reviewed': True, 'notes': None}`

	p := ParseDecisionPayload(raw)
	if len(p.Decisions) != 1 || p.Decisions[0] != "Adopt the new format" {
		t.Fatalf("decisions = %v", p.Decisions)
	}
	if len(p.ActionItems) != 1 || p.ActionItems[0].Title != "Migrate old records" || p.ActionItems[0].Assignee != "bob" {
		t.Fatalf("action items = %v", p.ActionItems)
	}
}

func TestParseDecisionPayload_PythonEscapedQuote(t *testing.T) {
	raw := `{'decisions': ['Don\'t ship on Friday']}`

	p := ParseDecisionPayload(raw)
	if len(p.Decisions) != 1 || p.Decisions[0] != "Don't ship on Friday" {
		t.Fatalf("decisions = %v", p.Decisions)
	}
}

func TestParseDecisionPayload_AliasKeys(t *testing.T) {
	for _, raw := range []string{
		`{"tasks": [{"task": "Check budget", "assigned_to": "alice"}]}`,
		`{"actions": [{"name": "Check budget", "owner": "alice"}]}`,
	} {
		p := ParseDecisionPayload(raw)
		if len(p.ActionItems) != 1 {
			t.Fatalf("%s: action items = %v", raw, p.ActionItems)
		}
		if p.ActionItems[0].Title != "Check budget" || p.ActionItems[0].Assignee != "alice" {
			t.Fatalf("%s: item = %+v", raw, p.ActionItems[0])
		}
	}
}

func TestParseDecisionPayload_FirstNonEmptyAliasWins(t *testing.T) {
	raw := `{"action_items": [], "tasks": ["Review contract"]}`

	p := ParseDecisionPayload(raw)
	if len(p.ActionItems) != 1 || p.ActionItems[0].Title != "Review contract" {
		t.Fatalf("action items = %v", p.ActionItems)
	}
}

func TestParseDecisionPayload_UntitledListShadowsLaterAliases(t *testing.T) {
	// The first alias holds a non-empty list, so it wins even though every
	// entry is unusable; the titled list under "tasks" must not be consulted.
	raw := `{"action_items": [{"assignee": "alice"}], "tasks": [{"title": "B"}]}`

	p := ParseDecisionPayload(raw)
	if len(p.ActionItems) != 0 {
		t.Fatalf("action items = %v, want none", p.ActionItems)
	}
}

func TestParseDecisionPayload_StringItems(t *testing.T) {
	raw := `{"action_items": ["Book the room", "  ", "Send invites"]}`

	p := ParseDecisionPayload(raw)
	if len(p.ActionItems) != 2 {
		t.Fatalf("action items = %v", p.ActionItems)
	}
	if p.ActionItems[0].Title != "Book the room" || p.ActionItems[1].Title != "Send invites" {
		t.Fatalf("action items = %v", p.ActionItems)
	}
}

func TestParseDecisionPayload_DecisionObjects(t *testing.T) {
	raw := `{"decisions": [{"decision": "Hire two engineers"}, {"text": "Freeze the API"}]}`

	p := ParseDecisionPayload(raw)
	if len(p.Decisions) != 2 || p.Decisions[1] != "Freeze the API" {
		t.Fatalf("decisions = %v", p.Decisions)
	}
}

func TestParseDecisionPayload_NonObjectKeepsRaw(t *testing.T) {
	p := ParseDecisionPayload(`["just", "a", "list"]`)
	if p.Raw != `["just", "a", "list"]` {
		t.Fatalf("raw = %q", p.Raw)
	}
	if len(p.Decisions) != 0 || len(p.ActionItems) != 0 {
		t.Fatalf("payload = %+v", p)
	}
}

func TestParseDecisionPayload_Garbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "not structured at all", "{broken", "{'unclosed': 'string}"} {
		p := ParseDecisionPayload(raw)
		if !p.IsEmpty() {
			t.Fatalf("%q: expected empty payload, got %+v", raw, p)
		}
	}
}
