package core

// ScreenStack layers modal screens over the active tab. While the stack is
// non-empty the topmost screen receives all key input; popping it returns
// control to the screen below, or to the tab when the stack drains.
type ScreenStack struct {
	screens []Screen
}

func (s *ScreenStack) Push(screen Screen) {
	if screen == nil {
		return
	}
	s.screens = append(s.screens, screen)
}

// Pop removes and returns the topmost screen; nil when the stack is empty.
func (s *ScreenStack) Pop() Screen {
	n := len(s.screens)
	if n == 0 {
		return nil
	}
	top := s.screens[n-1]
	s.screens = s.screens[:n-1]
	return top
}

func (s ScreenStack) Top() Screen {
	if n := len(s.screens); n > 0 {
		return s.screens[n-1]
	}
	return nil
}

func (s ScreenStack) Len() int {
	return len(s.screens)
}
