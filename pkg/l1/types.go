// Package l1 defines types shared by L1 controllers.
package l1

// ControllerRef is a reference to an L1 controller.
type ControllerRef struct {
	// Type is controller type, e.g. "jrk".
	Type string
	// ID is unique ID of the device.
	ID string
}

// Name retrieves the name from ref.
func (r ControllerRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates ControllerRef is valid.
func (r ControllerRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// ControllerMeta provides metadata for L1 controller.
type ControllerMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// ControllerInfo provides information of an L1 controller.
type ControllerInfo struct {
	Ref  ControllerRef
	Meta ControllerMeta
}
