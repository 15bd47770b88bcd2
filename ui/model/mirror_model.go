package model

// FlipState holds the two independent render-time mirroring transforms.
// Horizontal flips around the vertical axis, vertical around the horizontal
// axis; both may be active at once. Flips never mutate frame data.
type FlipState struct {
	Horizontal bool
	Vertical   bool
}

// MirrorModel tracks the mirror surface's presentation state: the bound
// display, the flip state and whether control affordances are shown. It is
// decoupled from the UI and confined to the UI context; presenters read it
// on tick and mutate it from user actions.
type MirrorModel struct {
	displayID int64
	bound     bool
	flip      FlipState
	controls  bool
	open      bool
}

// NewMirrorModel returns a model seeded with the given flip preference.
func NewMirrorModel(flip FlipState) *MirrorModel { return &MirrorModel{flip: flip} }

// Flip returns the current flip state.
func (m *MirrorModel) Flip() FlipState {
	if m == nil {
		return FlipState{}
	}
	return m.flip
}

// SetFlip replaces the flip state.
func (m *MirrorModel) SetFlip(f FlipState) {
	if m == nil {
		return
	}
	m.flip = f
}

// ToggleHorizontal flips the horizontal transform and returns the new state.
func (m *MirrorModel) ToggleHorizontal() FlipState {
	if m == nil {
		return FlipState{}
	}
	m.flip.Horizontal = !m.flip.Horizontal
	return m.flip
}

// ToggleVertical flips the vertical transform and returns the new state.
func (m *MirrorModel) ToggleVertical() FlipState {
	if m == nil {
		return FlipState{}
	}
	m.flip.Vertical = !m.flip.Vertical
	return m.flip
}

// BindDisplay records the display the mirror surface is pinned to.
func (m *MirrorModel) BindDisplay(id int64) {
	if m == nil {
		return
	}
	m.displayID = id
	m.bound = true
}

// UnbindDisplay records default (centered) placement.
func (m *MirrorModel) UnbindDisplay() {
	if m == nil {
		return
	}
	m.displayID = 0
	m.bound = false
}

// BoundDisplay returns the bound display id, if any.
func (m *MirrorModel) BoundDisplay() (int64, bool) {
	if m == nil {
		return 0, false
	}
	return m.displayID, m.bound
}

// SetControlsVisible records whether flip affordances are rendered.
func (m *MirrorModel) SetControlsVisible(v bool) {
	if m == nil {
		return
	}
	m.controls = v
}

// ControlsVisible reports whether flip affordances are rendered.
func (m *MirrorModel) ControlsVisible() bool { return m != nil && m.controls }

// SetOpen records whether a mirror surface currently exists.
func (m *MirrorModel) SetOpen(open bool) {
	if m == nil {
		return
	}
	m.open = open
}

// Open reports whether a mirror surface currently exists.
func (m *MirrorModel) Open() bool { return m != nil && m.open }
