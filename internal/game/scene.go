package game

// Scene is the render engine as the core sees it. Implementations own the
// actual renderables; the core only places, moves and removes them by id.
type Scene interface {
	// Place creates or moves the instance id.
	Place(id InstanceID, m *Model, xf Transform)
	Remove(id InstanceID)
	AttachCamera(id InstanceID)
	SetAtmosphere(a Atmosphere)
}

// NopScene discards everything.
type NopScene struct{}

func (NopScene) Place(InstanceID, *Model, Transform) {}
func (NopScene) Remove(InstanceID)                   {}
func (NopScene) AttachCamera(InstanceID)             {}
func (NopScene) SetAtmosphere(Atmosphere)            {}
