package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

type row struct {
	Name   string  `json:"name"`
	Value  string  `json:"value"`
	Header string  `json:"header" table:"wide"`
	Cached bool    `json:"cached"`
	Secret string  `json:"secret" table:"-"`
	TTL    *int    `json:"ttl,omitempty"`
	hidden string
}

func TestTableFormatter_Format_Table(t *testing.T) {
	table := &Table{
		Headers: []string{"NAME", "VALUE"},
		Rows:    [][]string{{"key1", "value1"}, {"key2", "value2"}},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[1], "value1") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestTableFormatter_Format_TableValueNoHeaders(t *testing.T) {
	table := Table{Headers: []string{"COL"}, Rows: [][]string{{"data"}}}

	var buf bytes.Buffer
	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "data" {
		t.Errorf("Format() = %q, want data", got)
	}
}

func TestTableFormatter_Format_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, nil); err != nil {
		t.Fatalf("Format(nil) error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Format(nil) wrote %q", buf.String())
	}
}

func TestTableFormatter_Format_Slice(t *testing.T) {
	ttl := 30
	data := []row{
		{Name: "CSRF", Value: "abc", Header: "X-CSRF", Cached: true, Secret: "s", TTL: &ttl, hidden: "h"},
		{Name: "NONCE", Value: "xyz"},
	}

	tests := []struct {
		name    string
		wide    bool
		headers []string
	}{
		{"narrow", false, []string{"NAME", "VALUE", "CACHED", "TTL"}},
		{"wide", true, []string{"NAME", "VALUE", "HEADER", "CACHED", "TTL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := toTable(data, tt.wide)
			if err != nil {
				t.Fatalf("toTable() error = %v", err)
			}
			if !reflect.DeepEqual(table.Headers, tt.headers) {
				t.Errorf("headers = %v, want %v", table.Headers, tt.headers)
			}
			if len(table.Rows) != 2 {
				t.Fatalf("rows = %d, want 2", len(table.Rows))
			}
			last := table.Rows[1][len(tt.headers)-1]
			if last != "-" {
				t.Errorf("nil TTL rendered as %q, want -", last)
			}
			if table.Rows[0][len(tt.headers)-1] != "30" {
				t.Errorf("TTL rendered as %q, want 30", table.Rows[0][len(tt.headers)-1])
			}
		})
	}
}

func TestTableFormatter_Format_PointerSlice(t *testing.T) {
	data := []*row{{Name: "A"}, nil, {Name: "B"}}

	table, err := toTable(data, false)
	if err != nil {
		t.Fatalf("toTable() error = %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("rows = %d, want 2 (nil skipped)", len(table.Rows))
	}
}

func TestTableFormatter_Format_EmptySlice(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, []row{}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); !strings.HasPrefix(got, "NAME") || strings.Contains(got, "\n") {
		t.Errorf("Format(empty) = %q, want header line only", got)
	}
}

func TestTableFormatter_Format_SingleStruct(t *testing.T) {
	table, err := toTable(&row{Name: "CSRF", Cached: true}, false)
	if err != nil {
		t.Fatalf("toTable() error = %v", err)
	}
	want := [][]string{
		{"name", "CSRF"},
		{"value", "-"},
		{"cached", "true"},
		{"ttl", "-"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("rows = %v, want %v", table.Rows, want)
	}
}

func TestTableFormatter_Format_FallbackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, map[string]int{"key": 1}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"key": 1`) {
		t.Errorf("Format(map) = %q, want JSON fallback", buf.String())
	}

	buf.Reset()
	if err := (&TableFormatter{}).Format(&buf, []string{"a"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"a"`) {
		t.Errorf("Format([]string) = %q, want JSON fallback", buf.String())
	}
}

func TestFormatValue(t *testing.T) {
	n := 7
	var nilPtr *int
	var iface any = "x"

	tests := []struct {
		name string
		v    reflect.Value
		want string
	}{
		{"string", reflect.ValueOf("s"), "s"},
		{"empty string", reflect.ValueOf(""), "-"},
		{"int", reflect.ValueOf(-3), "-3"},
		{"uint", reflect.ValueOf(uint8(9)), "9"},
		{"bool", reflect.ValueOf(false), "false"},
		{"pointer", reflect.ValueOf(&n), "7"},
		{"nil pointer", reflect.ValueOf(nilPtr), "-"},
		{"interface", reflect.ValueOf(&iface).Elem(), "x"},
		{"slice", reflect.ValueOf([]int{1, 2}), "[2 items]"},
		{"empty slice", reflect.ValueOf([]int{}), "-"},
		{"invalid", reflect.Value{}, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.v); got != tt.want {
				t.Errorf("formatValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTable_AddRowAndSetHeaders(t *testing.T) {
	table := &Table{}
	table.SetHeaders("A", "B")
	table.AddRow("1", "2")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "A  B") || !strings.Contains(buf.String(), "1  2") {
		t.Errorf("Render() = %q", buf.String())
	}
}
