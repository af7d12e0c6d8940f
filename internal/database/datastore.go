package database

// DataStore defines the unified interface for all data operations needed by the
// services. Consumers can depend on the smaller interfaces (e.g., CardRepository,
// Transactor) for better testability and clearer dependencies.
type DataStore interface {
	BoardRepository
	ColumnRepository
	CardRepository
	Transactor
}
