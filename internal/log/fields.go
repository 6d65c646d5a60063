package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldUtterance   = "utterance"
	FieldClause      = "clause"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldExpenseID   = "expense_id"
	FieldIntent      = "intent"
	FieldRangeStart  = "range_start"
	FieldRangeEnd    = "range_end"
	FieldRecords     = "records"
)

// Standard component names.
const (
	ComponentApp       = "app"
	ComponentAssistant = "assistant"
	ComponentLLM       = "llm"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
)

// Standard operation names.
const (
	OpAdd      = "add"
	OpQuery    = "query"
	OpAppend   = "append"
	OpMirror   = "mirror"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
