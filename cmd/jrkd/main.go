package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/golang/glog"

	fx "github.com/robotalks/jrk.go/pkg/framework"
	"github.com/robotalks/jrk.go/pkg/l1/env"
	"github.com/robotalks/jrk.go/pkg/l1/mqtt"
	"github.com/robotalks/jrk.go/pkg/l1/servo"
	"github.com/robotalks/jrk.go/pkg/l1/websocket"
	"github.com/robotalks/jrk.go/pkg/sim/jrksim"
)

var simulate bool

func init() {
	env.SetupFlags()
	flag.BoolVar(&simulate, "sim", simulate, "Use a simulated jrk instead of the serial port.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.MustLoad()
	var srv *servo.Servo
	if simulate {
		srv = servo.New(jrksim.NewDevice(2048))
		srv.Calibration = conf.Calibration
		glog.Info("using simulated jrk")
	} else {
		s, port, err := conf.OpenServo()
		if err != nil {
			log.Fatalln(err)
		}
		defer port.Close()
		srv = s
		glog.Infof("opened %s", port.Name())
	}

	poller := &servo.Poller{Servo: srv, Interval: conf.PollInterval}
	runner := fx.NewRunner().HandleSignals()
	if conf.MQTTBrokerURL != "" {
		endpoint, err := mqtt.NewEndpoint(conf.MQTTBrokerURL, conf.Info(), &servo.Commander{Servo: srv})
		if err != nil {
			log.Fatalln(err)
		}
		poller.Sinks = append(poller.Sinks, endpoint)
		runner.Go(endpoint)
	}
	if conf.ListenAddr != "" {
		hub := websocket.NewHub()
		poller.Sinks = append(poller.Sinks, hub)
		runner.Go(&websocket.Server{Addr: conf.ListenAddr, Hub: hub})
	}
	if len(poller.Sinks) == 0 {
		log.Fatalln("nothing to publish to, specify -mqtt or -listen")
	}
	runner.Go(poller)
	if err := runner.Wait(); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		log.Fatalln(err)
	}
}
