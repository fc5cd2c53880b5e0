package journal

// ColumnHint describes the column set a journal file must carry. It is
// attached to every user-facing parse error.
const ColumnHint = "the journal must contain an 'Open time' column; " +
	"optional columns: 'Close time', 'PnL', 'Profit (ticks)', 'Open volume'"

// SchemaError indicates the uploaded journal does not have the expected shape:
// a missing mandatory column, a header-only file, or an oversized file.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "journal schema error: " + e.Reason
}

// EmptyInputError indicates the journal parsed cleanly but left nothing to
// analyze: no data rows, no trades inside the session window, or no trading
// day with enough trades.
type EmptyInputError struct {
	Reason string
}

func (e *EmptyInputError) Error() string {
	return "empty journal: " + e.Reason
}
