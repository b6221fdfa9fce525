package bank_test

import (
	"fmt"

	"github.com/cwbudde/algo-jungle/dsp/filter/bank"
)

func ExampleEqualizer_SetBandGain() {
	eq, err := bank.NewEqualizer(48000)
	if err != nil {
		panic(err)
	}

	g, _ := eq.SetBandGain(5, 24)
	fmt.Printf("%.0f Hz -> %+.0f dB\n", bank.Frequencies[5], g)
	fmt.Println(eq.ResetAll())

	// Output:
	// 1000 Hz -> +16 dB
	// [0 0 0 0 0 0 0 0 0 0]
}
