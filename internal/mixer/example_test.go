package mixer

import "fmt"

// ExampleXorshift shows a single default mixing step.
func ExampleXorshift() {
	var m Mixer = Xorshift{}
	fmt.Println(m.Mix(1, Params{A: 13, B: 7}))
	// Output:
	// 8257
}

// ExampleNewDefaultRegistry lists the built-in mixers.
func ExampleNewDefaultRegistry() {
	fmt.Println(NewDefaultRegistry().List())
	// Output:
	// [rotate splitmix xorshift xorshift-star]
}
