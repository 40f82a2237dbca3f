package extraction

// Guess is a tagged heuristic result: a value paired with a signal strength
// in [0,1]. A miss is a normal, fully valid guess (OK=false, Signal=0) and
// never surfaces as an error.
type Guess[T any] struct {
	Value  T
	OK     bool
	Signal float64
}

func guessOf[T any](value T, signal float64) Guess[T] {
	return Guess[T]{Value: value, OK: true, Signal: signal}
}

func noGuess[T any]() Guess[T] {
	return Guess[T]{}
}
