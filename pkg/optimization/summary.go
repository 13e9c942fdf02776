// Package optimization provides shared data structures for goal search results.
package optimization

// Summary captures the result of a single savings goal search.
type Summary struct {
	Scenario   string   `json:"scenario"`
	Field      string   `json:"field"`
	Measure    string   `json:"measure"`
	Target     float64  `json:"target"`
	Original   float64  `json:"original"`
	Value      float64  `json:"value"`
	Achieved   float64  `json:"achieved"`
	Surplus    float64  `json:"surplus"`
	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Notes      []string `json:"notes,omitempty"`
}
