package storage

// FactRecord is one FAQ entry mirrored from the knowledge graph.
type FactRecord struct {
	ID       string // Stable id from the FAQ source (e.g. "pol-7")
	Label    string // Node label: "Policy" or "Product"
	Section  string
	Question string
	Answer   string
}
