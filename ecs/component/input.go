package component

// Input stores per-frame input state for an entity. It satisfies the
// motion input source contract so a controller can sample it directly.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool
	Pause       bool
}

func (in Input) SampleHorizontal() float64 { return in.MoveX }
func (in Input) SampleJumpPressed() bool   { return in.JumpPressed }
func (in Input) SampleJumpHeld() bool      { return in.Jump }

var InputComponent = NewComponent[Input]()
