package output

// PlanRenderer consumes plan events and produces one rendering of the plan.
// Flush completes the rendering after the stream ends.
type PlanRenderer interface {
	Handle(event Event) error
	Flush() error
}
