package component

// Clock is the world's frame clock singleton.
type Clock struct {
	Delta   float64
	Elapsed float64
	Frame   int
}

var ClockComponent = NewComponent[Clock]()
