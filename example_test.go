package altcurve_test

import (
	"fmt"

	"honnef.co/go/altcurve"
)

func ExampleCurve_Eval() {
	c := altcurve.New([]altcurve.Keyframe{
		altcurve.Key(0, 0, altcurve.LinearInterp),
		altcurve.Key(1, 10, altcurve.LinearInterp),
		altcurve.Key(2, 5, altcurve.ConstantInterp),
	}, altcurve.Constant, altcurve.Linear)

	for _, t := range []float64{-1, 0, 0.5, 1.5, 2, 3} {
		fmt.Println(t, c.Eval(t))
	}
	// Output:
	// -1 0
	// 0 0
	// 0.5 5
	// 1.5 7.5
	// 2 5
	// 3 0
}

func ExampleSanitize() {
	keys := altcurve.Sanitize([]altcurve.Keyframe{
		altcurve.Key(2, 1, altcurve.LinearInterp),
		altcurve.Key(0, 0, altcurve.LinearInterp),
		altcurve.Key(2, 5, altcurve.LinearInterp),
	})
	fmt.Println(keys)
	// Output:
	// [(0, 0 Linear) (2, 1 Linear)]
}

func ExampleDecodeJSON() {
	c, err := altcurve.DecodeJSON([]byte(`{"_ace_v":1,"pri":"Cycle","poi":"Cycle","keys":[{"x":0,"y":0,"i":"Linear"},{"x":1,"y":10}]}`))
	if err != nil {
		panic(err)
	}
	fmt.Println(c)
	fmt.Println(c.Eval(1.5))
	// Output:
	// Curve{pre=Cycle post=Cycle [(0, 0 Linear) (1, 10 Cubic Automatic in=0 out=0)]}
	// 5
}

func ExampleEncodeJSON() {
	c := altcurve.New([]altcurve.Keyframe{
		altcurve.Key(0, 0, altcurve.LinearInterp),
		altcurve.CubicKey(1, 10, altcurve.Split, 2, 0),
	}, altcurve.Constant, altcurve.Oscillate)
	data, err := altcurve.EncodeJSON(c)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(data))
	// Output:
	// {"_ace_v":1,"poi":"Oscillate","keys":[{"x":0,"y":0,"i":"Linear"},{"x":1,"y":10,"ti":2,"tm":"Split"}]}
}

func ExampleDraft() {
	d := altcurve.NewDraft(altcurve.New([]altcurve.Keyframe{
		altcurve.Key(0, 0, altcurve.CubicInterp),
		altcurve.Key(2, 4, altcurve.CubicInterp),
	}, altcurve.Constant, altcurve.Constant))

	// Drag a new keyframe past the last one.
	i := d.Insert(altcurve.Key(1, 1, altcurve.CubicInterp))
	d.Set(i, altcurve.Key(3, 1, altcurve.CubicInterp))

	c := d.Build()
	for _, k := range c.All() {
		fmt.Println(k)
	}
	// Output:
	// (0, 0 Cubic Automatic in=0 out=0)
	// (2, 4 Cubic Automatic in=0.33333334 out=0.33333334)
	// (3, 1 Cubic Automatic in=0 out=0)
}
