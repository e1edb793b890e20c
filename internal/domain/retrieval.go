package domain

// Chunk is one retrieved document fragment with provenance and relevance.
// Chunks live only for the request that retrieved them.
type Chunk struct {
	Text    string
	Source  string
	Ordinal int
	Score   float64
}
