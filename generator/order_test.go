package generator

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ridoystarlord/ddlgen/schema"
)

// chain builds tables in the given order with relations owner -> target
func chain(names []string, relations map[string][]string) []*schema.Table {
	byName := map[string]*schema.Table{}
	var tables []*schema.Table
	for _, name := range names {
		t := schema.NewTable(name, "")
		t.AddColumns(schema.NewColumn("id", "int"), schema.NewColumn("ref_id", "int"))
		byName[name] = t
		tables = append(tables, t)
	}
	for owner, targets := range relations {
		for _, target := range targets {
			byName[owner].AddForeignKey("fk_"+owner+"_"+target, []string{"ref_id"}, byName[target], []string{"id"})
		}
	}
	return tables
}

func assertSettled(t *testing.T, order []string, tables []*schema.Table) {
	t.Helper()
	position := map[string]int{}
	for i, name := range order {
		position[name] = i
	}
	for _, table := range tables {
		for _, target := range table.RelationTables() {
			if position[target] > position[table.Name] {
				t.Errorf("%s at %d precedes its target %s at %d", table.Name, position[table.Name], target, position[target])
			}
		}
	}
}

func TestDestructiveOrder(t *testing.T) {
	tests := []struct {
		name      string
		tables    []string
		relations map[string][]string
		want      []string
	}{
		{
			name:   "no relations keeps declaration order",
			tables: []string{"a", "b", "c"},
			want:   []string{"a", "b", "c"},
		},
		{
			name:      "already settled order is unchanged",
			tables:    []string{"c", "b", "a"},
			relations: map[string][]string{"a": {"b"}, "b": {"c"}},
			want:      []string{"c", "b", "a"},
		},
		{
			name:      "chain declared owner first",
			tables:    []string{"a", "b", "c"},
			relations: map[string][]string{"a": {"b"}, "b": {"c"}},
			want:      []string{"c", "b", "a"},
		},
		{
			name:      "partially ordered declaration",
			tables:    []string{"c", "a", "b"},
			relations: map[string][]string{"a": {"b"}, "b": {"c"}},
			want:      []string{"c", "b", "a"},
		},
		{
			name:      "owner moved behind its target",
			tables:    []string{"orders", "users", "tags"},
			relations: map[string][]string{"orders": {"users"}},
			want:      []string{"users", "tags", "orders"},
		},
		{
			name:      "self reference is ignored",
			tables:    []string{"nodes", "trees"},
			relations: map[string][]string{"nodes": {"nodes"}},
			want:      []string{"nodes", "trees"},
		},
		{
			name:      "diamond",
			tables:    []string{"d", "b", "c", "a"},
			relations: map[string][]string{"d": {"b", "c"}, "b": {"a"}, "c": {"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := chain(tt.tables, tt.relations)
			got, err := DestructiveOrder(tables)
			if err != nil {
				t.Fatalf("DestructiveOrder() error = %v", err)
			}
			if len(got) != len(tt.tables) {
				t.Fatalf("order %v lost tables", got)
			}
			if tt.want != nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DestructiveOrder() = %v, want %v", got, tt.want)
			}
			assertSettled(t, got, tables)
		})
	}
}

func TestDestructiveOrderDeterministic(t *testing.T) {
	names := []string{"t1", "t2", "t3", "t4", "t5", "t6"}
	relations := map[string][]string{"t1": {"t6", "t3"}, "t2": {"t5"}, "t3": {"t4"}, "t5": {"t4"}}

	first, err := DestructiveOrder(chain(names, relations))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, _ := DestructiveOrder(chain(names, relations))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced %v, first run %v", i, again, first)
		}
	}
}

func TestDestructiveOrderCycle(t *testing.T) {
	tables := chain([]string{"a", "b", "c"}, map[string][]string{"a": {"b"}, "b": {"a"}})

	got, err := DestructiveOrder(tables)
	if !errors.Is(err, ErrCyclicRelations) {
		t.Fatalf("error = %v, want ErrCyclicRelations", err)
	}
	if len(got) != 3 {
		t.Errorf("order %v should still hold every table", got)
	}
}

func TestDestructiveStatements(t *testing.T) {
	order := []string{"users", "orders"}

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{
			name: "truncate",
			got:  TruncateStatements(order, Options{}),
			want: []string{"TRUNCATE TABLE users;", "TRUNCATE TABLE orders;"},
		},
		{
			name: "drop with exist check",
			got:  DropStatements(order, Options{ExistCheck: true, Schema: "app"}),
			want: []string{"DROP TABLE IF EXISTS app.users;", "DROP TABLE IF EXISTS app.orders;"},
		},
		{
			name: "lowercase",
			got:  TruncateStatements(order, Options{ExistCheck: true, LowerAll: true}),
			want: []string{"truncate table if exists users;", "truncate table if exists orders;"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
