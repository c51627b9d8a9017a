package twalk

// Step is one unit of a composable document pipeline: a stateless
// operation over the whole document plus its predecessor's typed output.
// prev is nil for the first step of a pipeline.
//
// Steps compose with Then; composition type-checks at compile time, so
// Then(a, b) is only well-formed when b's input type is a's output type.
type Step[In, Out any] interface {
	Run(doc *Value, prev *In) (Out, error)
}

// StepFunc adapts a plain function to a Step.
type StepFunc[In, Out any] func(doc *Value, prev *In) (Out, error)

// Run implements Step.
func (f StepFunc[In, Out]) Run(doc *Value, prev *In) (Out, error) {
	return f(doc, prev)
}

type chainStep[In, Mid, Out any] struct {
	first  Step[In, Mid]
	second Step[Mid, Out]
}

func (c chainStep[In, Mid, Out]) Run(doc *Value, prev *In) (Out, error) {
	mid, err := c.first.Run(doc, prev)
	if err != nil {
		var zero Out
		return zero, err
	}
	return c.second.Run(doc, &mid)
}

// Then composes two steps into one: a runs first, and on success b runs
// with a's output as its input. If a fails, b never runs and the composed
// step fails with a's error. The result is itself a Step, so chains nest
// arbitrarily and associate left-to-right:
//
//	Then(Then(a, b), c)
//	Then(a, Then(b, c))
//
// execute the same steps in the same order.
func Then[In, Mid, Out any](a Step[In, Mid], b Step[Mid, Out]) Step[In, Out] {
	return chainStep[In, Mid, Out]{first: a, second: b}
}

// Run executes a step (or a composed chain) against the live document.
// Mutations the step performs are kept even when a later part of a chain
// fails; use RunAtomic for rollback.
func Run[In, Out any](doc *Value, s Step[In, Out]) (Out, error) {
	return s.Run(doc, nil)
}

// RunAtomic executes a step against the live document with all-or-nothing
// semantics: the document is deep-copied up front, and on any failure the
// copy is restored into the document before the error is returned.
func RunAtomic[In, Out any](doc *Value, s Step[In, Out]) (Out, error) {
	snapshot := doc.Clone()
	out, err := s.Run(doc, nil)
	if err != nil {
		*doc = *snapshot
	}
	return out, err
}
