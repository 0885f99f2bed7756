package storage

// ChatFilter names the single equality predicate a single-chat read applies.
// It is constructed only from known keys, so the WHERE clause is fixed at
// compile time rather than assembled from caller-supplied column names.
type ChatFilter struct {
	column string
	value  any
}

func FilterByExternalID(chatID string) ChatFilter {
	return ChatFilter{column: "c.chat_id", value: chatID}
}

func FilterByInternalID(id int64) ChatFilter {
	return ChatFilter{column: "c.id", value: id}
}

func (f ChatFilter) Column() string { return f.column }
func (f ChatFilter) Value() any     { return f.value }
