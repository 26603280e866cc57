package capabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultProfile(t *testing.T) {
	p := Default()

	assert.Equal(t, AggregateFunctionsAll, p.SupportedAggregateFunctions)
	assert.Equal(t, SQLConformanceSQL92Full, p.SQLConformance)

	assert.True(t, p.SupportsNumericLiterals)
	assert.True(t, p.SupportsStringLiterals)
	assert.True(t, p.SupportsOdbcDateLiterals)
	assert.True(t, p.SupportsOdbcTimeLiterals)
	assert.True(t, p.SupportsOdbcTimestampLiteral)

	assert.False(t, p.SupportsTop)
	assert.False(t, p.SupportsNativeQuery)
	assert.False(t, p.HierarchicalNavigation)

	assert.True(t, p.TolerantNumericUpconversion)
	assert.True(t, p.TolerantConcatOverflow)
	assert.True(t, p.ConnectionPooling)
}

func TestDefaultReturnsCopy(t *testing.T) {
	p := Default()
	p.SupportsTop = true
	p.SQLConformance = "mutated"

	fresh := Default()
	assert.False(t, fresh.SupportsTop)
	assert.Equal(t, SQLConformanceSQL92Full, fresh.SQLConformance)
}

func TestTypeInfoHookPassthrough(t *testing.T) {
	row := TypeInfoRow{TypeName: "keyword", DataType: 12, ColumnSize: 256, Nullable: true}

	t.Run("disabled", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		hook := NewTypeInfoHook(zap.New(core), false)

		got := hook(row)
		assert.Equal(t, row, got)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("enabled", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		hook := NewTypeInfoHook(zap.New(core), true)

		got := hook(row)
		assert.Equal(t, row, got, "hooks observe, never alter")
		assert.Equal(t, 1, logs.Len())
	})
}

func TestColumnsHookSkipsSentinel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hook := NewColumnsHook(zap.New(core), true)

	real := ColumnRow{TableName: "flights", ColumnName: "origin", TypeName: "keyword", DataType: 12}
	probeTable := ColumnRow{TableName: TraceSentinel, ColumnName: "origin"}
	probeColumn := ColumnRow{TableName: "flights", ColumnName: TraceSentinel}

	assert.Equal(t, real, hook(real))
	assert.Equal(t, probeTable, hook(probeTable), "sentinel rows still pass through")
	assert.Equal(t, probeColumn, hook(probeColumn))

	// Only the real row reaches the trace output.
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "flights", logs.All()[0].ContextMap()["table_name"])
}

func TestColumnsHookDisabled(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hook := NewColumnsHook(zap.New(core), false)

	row := ColumnRow{TableName: "flights", ColumnName: "origin"}
	assert.Equal(t, row, hook(row))
	assert.Equal(t, 0, logs.Len())
}
