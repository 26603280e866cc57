package capabilities

import (
	"go.uber.org/zap"
)

// TraceSentinel marks synthetic probe rows the host issues during its own
// diagnostics. Column-metadata rows whose table or column name equals this
// value are excluded from trace output.
const TraceSentinel = "TEST"

// TypeInfoRow is one row of SQLGetTypeInfo metadata reported by the driver.
type TypeInfoRow struct {
	TypeName   string `json:"type_name"`
	DataType   int    `json:"data_type"`
	ColumnSize int    `json:"column_size"`
	Nullable   bool   `json:"nullable"`
}

// ColumnRow is one row of SQLColumns metadata reported by the driver.
type ColumnRow struct {
	TableName  string `json:"table_name"`
	ColumnName string `json:"column_name"`
	TypeName   string `json:"type_name"`
	DataType   int    `json:"data_type"`
}

// TypeInfoHook observes one type-info row and returns it. Hooks never alter
// the row; they exist only for diagnostics.
type TypeInfoHook func(TypeInfoRow) TypeInfoRow

// ColumnsHook observes one column-metadata row and returns it.
type ColumnsHook func(ColumnRow) ColumnRow

// NewTypeInfoHook returns a hook that logs each type-info row when tracing is
// enabled. With tracing disabled the hook is a no-op that passes its input
// through unchanged.
func NewTypeInfoHook(log *zap.Logger, traceEnabled bool) TypeInfoHook {
	if !traceEnabled {
		return func(row TypeInfoRow) TypeInfoRow { return row }
	}
	return func(row TypeInfoRow) TypeInfoRow {
		log.Debug("type info row",
			zap.String("type_name", row.TypeName),
			zap.Int("data_type", row.DataType),
			zap.Int("column_size", row.ColumnSize),
			zap.Bool("nullable", row.Nullable))
		return row
	}
}

// NewColumnsHook returns a hook that logs each column-metadata row when
// tracing is enabled, skipping rows whose table or column name equals
// TraceSentinel. With tracing disabled the hook is a no-op passthrough.
func NewColumnsHook(log *zap.Logger, traceEnabled bool) ColumnsHook {
	if !traceEnabled {
		return func(row ColumnRow) ColumnRow { return row }
	}
	return func(row ColumnRow) ColumnRow {
		if row.TableName != TraceSentinel && row.ColumnName != TraceSentinel {
			log.Debug("column row",
				zap.String("table_name", row.TableName),
				zap.String("column_name", row.ColumnName),
				zap.String("type_name", row.TypeName),
				zap.Int("data_type", row.DataType))
		}
		return row
	}
}
