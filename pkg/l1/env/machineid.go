package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const (
	appID    = "jrk.go"
	idLength = 12
)

// MachineID retrieves a short ID identifying the machine. The raw
// machine ID is hashed with the app ID so it isn't exposed on MQTT.
// Hostname is used where no machine ID is available.
func MachineID() string {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		glog.Warningf("machine id: %v", err)
		if id, err = os.Hostname(); err != nil {
			return "unknown"
		}
		return id
	}
	if len(id) > idLength {
		id = id[:idLength]
	}
	return id
}
