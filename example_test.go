package fixfmt_test

import (
	"errors"
	"fmt"

	"github.com/bjaus/fixfmt"
)

func Example() {
	b := fixfmt.Must(64, "write some stuff %s: %.2f", "foo", 42.3456)
	fmt.Println(b.String())
	// Output: write some stuff foo: 42.35
}

func ExampleMake() {
	var arr [64]byte
	b := fixfmt.Make(arr[:])
	if err := b.Interpolate("write some stuff {}: {:.2}", "foo", 42.3456); err != nil {
		panic(err)
	}
	fmt.Println(b.String())

	// Use the buffer a second time.
	if err := b.Interpolate("same buffer, new {}, int {}, float {:.1}", "text", 123, 4.1234); err != nil {
		panic(err)
	}
	fmt.Println(b.String())
	// Output:
	// write some stuff foo: 42.35
	// same buffer, new text, int 123, float 4.1
}

func ExampleBuffer_Interpolate_overflow() {
	b := fixfmt.New(10)
	err := b.Interpolate("{}", "abcdefghijklmno")
	fmt.Println(errors.Is(err, fixfmt.ErrOverflow), b.Len(), string(b.Bytes()))
	// Output: true 10 abcdefghij
}

func ExampleMustInterpolate() {
	b := fixfmt.MustInterpolate(32, "[{:>6}|{:<4}|{:^5}]", 42, "ab", "c")
	fmt.Println(b.String())
	// Output: [    42|ab  |  c  ]
}
