package arena

// InputState is what the input collaborator reports for one step.
type InputState struct {
	Left, Right, Up, Down bool

	// Fire is true only on the step the fire button went down.
	Fire bool

	// Pointer is the cursor in world coordinates; ignored unless PointerOK.
	Pointer   Vec2
	PointerOK bool
}

// Direction returns the raw, unnormalized movement direction. Opposing keys
// cancel out.
func (in InputState) Direction() Vec2 {
	var d Vec2
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	if in.Down {
		d.Y--
	}
	if in.Up {
		d.Y++
	}
	return d
}

// InputSource produces the input for the next step of s.
type InputSource interface {
	Input(s *Sim) InputState
}

// InputFunc adapts a plain function to InputSource.
type InputFunc func(s *Sim) InputState

func (f InputFunc) Input(s *Sim) InputState { return f(s) }
