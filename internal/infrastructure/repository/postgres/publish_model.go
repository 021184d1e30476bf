package postgres

type publishTableModel struct {
	EventID string `db:"event_id"`
	Publish string `db:"publish"`
}
