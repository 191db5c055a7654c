package store

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestAppendConditionShapes(t *testing.T) {
	cases := []struct {
		name       string
		cond       Condition
		wantClause string
		wantArgs   int
	}{
		{"eq", Condition{Attribute: AttrStatus, Op: OpEq, Value: "open"}, "status = $1", 1},
		{"in", Condition{Attribute: AttrPriority, Op: OpIn, Values: []any{"high", "critical"}}, "priority IN ($1,$2)", 2},
		{"gte", Condition{Attribute: AttrTimeSpent, Op: OpGte, Value: 30}, "time_spent_minutes >= $1", 1},
		{"lt", Condition{Attribute: AttrCreatedAt, Op: OpLt, Value: "x"}, "created_at < $1", 1},
		{"contains", Condition{Attribute: AttrTags, Op: OpContains, Value: "vpn"}, "$1 = ANY(tags)", 1},
	}
	for _, tt := range cases {
		clauses, args := appendCondition(nil, nil, tt.cond)
		if len(clauses) != 1 || clauses[0] != tt.wantClause {
			t.Fatalf("%s: clauses=%v, want %q", tt.name, clauses, tt.wantClause)
		}
		if len(args) != tt.wantArgs {
			t.Fatalf("%s: args=%v, want %d values", tt.name, args, tt.wantArgs)
		}
	}
}

func TestAppendExpressionGroupsAnyWithOr(t *testing.T) {
	expr := Expression{
		All: []Condition{
			{Attribute: AttrStatus, Op: OpEq, Value: "open"},
		},
		Any: []Condition{
			{Attribute: AttrTags, Op: OpContains, Value: "vpn"},
			{Attribute: AttrTags, Op: OpContains, Value: "network"},
		},
	}
	clauses, args := appendExpression(nil, nil, expr)
	if len(clauses) != 2 {
		t.Fatalf("clauses=%v, want conjunction plus OR group", clauses)
	}
	if clauses[0] != "status = $1" {
		t.Fatalf("first clause=%q", clauses[0])
	}
	if clauses[1] != "($2 = ANY(tags) OR $3 = ANY(tags))" {
		t.Fatalf("OR group=%q", clauses[1])
	}
	if len(args) != 3 {
		t.Fatalf("args=%v, want 3 values", args)
	}
}

func TestAppendExpressionNumbersArgsSequentially(t *testing.T) {
	expr := Expression{
		All: []Condition{
			{Attribute: AttrStatus, Op: OpIn, Values: []any{"open", "in_progress"}},
			{Attribute: AttrEscalation, Op: OpGt, Value: 0},
		},
	}
	clauses, args := appendExpression(nil, nil, expr)
	joined := strings.Join(clauses, " AND ")
	if joined != "status IN ($1,$2) AND escalation_level > $3" {
		t.Fatalf("joined=%q", joined)
	}
	if len(args) != 3 {
		t.Fatalf("args=%v, want 3 values", args)
	}
}

func TestEncodeCursor(t *testing.T) {
	decoded, err := base64.StdEncoding.DecodeString(encodeCursor(30))
	if err != nil {
		t.Fatalf("cursor is not base64: %v", err)
	}
	if string(decoded) != "offset:30" {
		t.Fatalf("cursor=%q, want offset:30", decoded)
	}
}
