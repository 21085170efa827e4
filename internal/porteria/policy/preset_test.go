package policy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTolerance(t *testing.T) {
	tests := []struct {
		in      string
		want    Tolerance
		wantErr bool
	}{
		{in: "none", want: NoTolerance()},
		{in: "NONE", want: NoTolerance()},
		{in: " 15 ", want: Minutes(15)},
		{in: "0", want: Minutes(0)},
		{in: "-1", wantErr: true},
		{in: "soon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTolerance(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTolerance_JSON(t *testing.T) {
	var r Rule
	require.NoError(t, json.Unmarshal([]byte(`{"allowed":true,"by_schedule":true,"tolerance_minutes":10}`), &r))
	assert.Equal(t, Minutes(10), r.Tolerance)
	assert.True(t, r.BySchedule)

	require.NoError(t, json.Unmarshal([]byte(`{"tolerance_minutes":"none"}`), &r))
	assert.True(t, r.Tolerance.IsNone())

	b, err := json.Marshal(Rule{Tolerance: NoTolerance()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"allowed":false,"by_schedule":false,"tolerance_minutes":"none"}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"tolerance_minutes":-5}`), &r))
}

func TestTable_Lookup(t *testing.T) {
	table := NewTable(Defaults())

	p, ok := table.Lookup("horario_estricto")
	require.True(t, ok)
	assert.True(t, p.Entry.BySchedule)
	assert.Equal(t, 15, p.Entry.Tolerance.Minutes())

	again, _ := table.Lookup("horario_estricto")
	assert.Equal(t, p, again, "lookup must be pure")

	missing, ok := table.Lookup("no_existe")
	assert.False(t, ok)
	assert.Equal(t, Preset{}, missing)
	assert.False(t, missing.Entry.Allowed)
	assert.False(t, missing.Entry.BySchedule)
}

func TestTable_IsolatedFromSource(t *testing.T) {
	src := map[string]Preset{"x": {Entry: Rule{Allowed: true}}}
	table := NewTable(src)
	src["x"] = Preset{}

	p, ok := table.Lookup("x")
	require.True(t, ok)
	assert.True(t, p.Entry.Allowed)
}

func TestTable_KeysSorted(t *testing.T) {
	table := NewTable(Defaults())
	assert.Equal(t, []string{"acceso_total", "horario_estricto", "horario_flexible", "solo_funcionarios"}, table.Keys())
}

func TestTable_NilIsEmpty(t *testing.T) {
	var table *Table
	_, ok := table.Lookup("acceso_total")
	assert.False(t, ok)
	assert.Empty(t, table.Keys())
}
